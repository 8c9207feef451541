package bridge

import "html/template"

type pageData struct {
	Cards []Card
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>musicstream</title>
<style>
body { font-family: sans-serif; background: #111; color: #eee; margin: 2rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(360px, 1fr)); gap: 1.5rem; }
.card { background: #1c1c1c; border-radius: 8px; padding: 1rem; }
.card iframe { width: 100%; aspect-ratio: 16 / 9; border: 0; }
.card h2 { font-size: 1rem; margin: .5rem 0 .25rem; }
.card p { margin: 0; color: #aaa; font-size: .9rem; }
.empty { color: #888; }
</style>
</head>
<body>
<h1>musicstream</h1>
{{if .Cards}}
<div class="cards">
{{range .Cards}}
  <div class="card">
    <iframe id="{{.FrameID}}" src="{{.EmbedURL}}" allow="autoplay; encrypted-media" allowfullscreen></iframe>
    <h2>{{.Title}}</h2>
    <p>{{.Artists}}</p>
    {{if .WatchURL}}<p><a href="{{.WatchURL}}" target="_blank" rel="noopener">Watch on YouTube</a></p>{{end}}
  </div>
{{end}}
</div>
{{else}}
<p class="empty">Search in the terminal to load results here.</p>
{{end}}
<script>
(function () {
  var frames = function () { return Array.prototype.slice.call(document.querySelectorAll("iframe")); };

  frames().forEach(function (f) {
    f.addEventListener("load", function () {
      f.contentWindow.postMessage(JSON.stringify({ event: "listening", id: f.id }), "*");
    });
  });

  var events = new EventSource("/events");
  events.addEventListener("command", function (e) {
    var m = JSON.parse(e.data);
    var f = document.getElementById(m.frame);
    if (f && f.contentWindow) { f.contentWindow.postMessage(m.data, m.target); }
  });
  events.addEventListener("reload", function () { window.location.reload(); });

  window.addEventListener("message", function (e) {
    var f = frames().find(function (f) { return f.contentWindow === e.source; });
    if (!f) { return; }
    var data = typeof e.data === "string" ? e.data : JSON.stringify(e.data);
    fetch("/frames/" + encodeURIComponent(f.id) + "/messages", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ origin: e.origin, data: data })
    });
  });
})();
</script>
</body>
</html>
`))
