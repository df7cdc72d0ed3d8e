package events

import "github.com/atomicstack/marcos/internal/logging"

type NavTracer struct{}

type TabTracer struct{}

type ModeTracer struct{}

type WatchTracer struct{}

var (
	Nav   = NavTracer{}
	Tab   = TabTracer{}
	Mode  = ModeTracer{}
	Watch = WatchTracer{}
)

func (NavTracer) Cursor(tab, path string, cursor int) {
	logging.Trace("nav.cursor", map[string]interface{}{"tab": tab, "path": path, "cursor": cursor})
}

func (NavTracer) Enter(tab, from, to string) {
	logging.Trace("nav.enter", map[string]interface{}{"tab": tab, "from": from, "to": to})
}

func (NavTracer) Back(tab, from, to string) {
	logging.Trace("nav.back", map[string]interface{}{"tab": tab, "from": from, "to": to})
}

func (NavTracer) Refresh(tab, path string) {
	logging.Trace("nav.refresh", map[string]interface{}{"tab": tab, "path": path})
}

func (NavTracer) Failed(tab, op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("nav.error", map[string]interface{}{"tab": tab, "op": op, "error": err.Error()})
}

func (TabTracer) Open(id, path string) {
	logging.Trace("tab.open", map[string]interface{}{"tab": id, "path": path})
}

func (TabTracer) Close(id string) {
	logging.Trace("tab.close", map[string]interface{}{"tab": id})
}

func (TabTracer) Focus(id string) {
	logging.Trace("tab.focus", map[string]interface{}{"tab": id})
}

func (ModeTracer) Switch(from, to string) {
	logging.Trace("mode.switch", map[string]interface{}{"from": from, "to": to})
}

func (ModeTracer) Submit(text string) {
	logging.Trace("command.submit", map[string]interface{}{"text": text})
}

func (WatchTracer) Change(path string, refreshed []string) {
	logging.Trace("watch.change", map[string]interface{}{"path": path, "refreshed": refreshed})
}

func (WatchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"error": err.Error()})
}
