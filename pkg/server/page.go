package server

import (
	"html/template"
	"io"
)

// shellTemplate is the mount page. It carries a small inline client that
// speaks the wire contract: build the DOM from the mount message, then walk
// each update's edit script with a cursor over the surface's child list.
var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="{{.MountID}}"></div>
<script>
(function () {
  var surface = null;
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/live");

  function send(handle, type, ev) {
    var t = ev && ev.target ? ev.target : {};
    ws.send(JSON.stringify({k: "event", event: {
      h: handle, t: type, v: t.value || "", c: !!t.checked, key: ev && ev.key ? ev.key : ""
    }}));
  }

  function build(node) {
    if (typeof node === "string") return document.createTextNode(node);
    var el = document.createElement(node.t);
    var k;
    for (k in (node.a || {})) el.setAttribute(k, node.a[k]);
    for (k in (node.e || {})) attach(el, k, node.e[k]);
    (node.c || []).forEach(function (c) { el.appendChild(build(c)); });
    return el;
  }

  function attach(el, type, handle) {
    el.__loom = el.__loom || {};
    var bound = send.bind(null, handle, type);
    el.addEventListener(type, bound);
    el.__loom[type] = {handle: handle, fn: bound};
  }

  function detach(el, type) {
    var reg = el.__loom && el.__loom[type];
    if (!reg) return;
    el.removeEventListener(type, reg.fn);
    delete el.__loom[type];
  }

  function apply(parent, edits) {
    var cursor = 0;
    edits.forEach(function (e) {
      if (e.s !== undefined) { cursor += e.s; return; }
      if (e.d !== undefined) {
        for (var n = 0; n < e.d; n++) parent.removeChild(parent.childNodes[cursor]);
        return;
      }
      if (e.r !== undefined) {
        parent.replaceChild(build(e.r), parent.childNodes[cursor]);
        cursor++;
        return;
      }
      if (e.i !== undefined) {
        parent.insertBefore(build(e.i), parent.childNodes[cursor] || null);
        cursor++;
        return;
      }
      if (e.f !== undefined) {
        var moved = [];
        for (var m = 0; m < e.n; m++) moved.push(parent.childNodes[e.f + m]);
        var anchor = parent.childNodes[cursor] || null;
        moved.forEach(function (node) { parent.insertBefore(node, anchor); });
        cursor -= e.n;
        return;
      }
      inPlace(parent.childNodes[cursor], e);
      cursor++;
    });
  }

  function inPlace(el, e) {
    var k;
    for (k in (e.a || {})) {
      if (e.a[k] === null) el.removeAttribute(k); else el.setAttribute(k, e.a[k]);
    }
    for (k in (e.e || {})) {
      if (e.e[k] === null) detach(el, k); else { detach(el, k); attach(el, k, e.e[k]); }
    }
    if (e.c) apply(el, e.c);
  }

  ws.onmessage = function (raw) {
    var msg = JSON.parse(raw.data);
    if (msg.k === "mount") {
      surface = document.querySelector(msg.mount.sel);
      surface.textContent = "";
      msg.mount.nodes.forEach(function (n) { surface.appendChild(build(n)); });
    } else if (msg.k === "update") {
      apply(surface, msg.update.edits);
    }
  };
})();
</script>
</body>
</html>
`))

type shellData struct {
	Title   string
	MountID string
}

func writeShell(w io.Writer, cfg *Config) error {
	id := cfg.Selector
	if len(id) > 0 && id[0] == '#' {
		id = id[1:]
	}
	return shellTemplate.Execute(w, shellData{Title: cfg.Title, MountID: id})
}
