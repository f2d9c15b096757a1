package server

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/docsquad/internal/media"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>docsquad</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
#status li { margin: .25rem 0; }
#preview { border-top: 1px solid #ccc; margin-top: 1rem; }
.hidden { display: none; }
</style>
</head>
<body>
<h1>docsquad</h1>
<p>Upload a recording or screenshot of a technical session and get structured documentation back.</p>
<form id="upload">
  <p><input type="file" name="file" accept="{{.Accept}}" required></p>
  <p><textarea name="context" rows="3" cols="60" placeholder="Extra context, e.g. installing Apache on Ubuntu"></textarea></p>
  <p><button type="submit">Generate documentation</button></p>
</form>
<ul id="status"></ul>
<p id="downloads" class="hidden">
  <a id="md" href="#">Download .md</a> | <a id="docx" href="#">Download .docx</a>
</p>
<div id="preview"></div>
<script>
const icons = {start: "🚀", ingest: "📥", analyze: "🧠", write: "✍️"};
document.getElementById("upload").addEventListener("submit", async (e) => {
  e.preventDefault();
  const status = document.getElementById("status");
  status.innerHTML = "";
  document.getElementById("preview").innerHTML = "";
  document.getElementById("downloads").classList.add("hidden");
  const add = (text) => { const li = document.createElement("li"); li.textContent = text; status.appendChild(li); };

  const resp = await fetch("/api/runs", {method: "POST", body: new FormData(e.target)});
  if (!resp.ok) { add("❌ " + await resp.text()); return; }
  const run = await resp.json();
  add("⏳ queued " + run.file_name);

  const proto = location.protocol === "https:" ? "wss://" : "ws://";
  const ws = new WebSocket(proto + location.host + "/api/runs/" + run.id + "/events");
  ws.onmessage = async (msg) => {
    const m = JSON.parse(msg.data);
    if (m.type === "event") { add((icons[m.event.stage] || "•") + " " + m.event.message); return; }
    if (m.run.status === "failed") { add("❌ " + m.run.error); return; }
    add("✅ done");
    const base = "/api/runs/" + run.id;
    document.getElementById("md").href = base + "/document.md";
    document.getElementById("docx").href = base + "/document.docx";
    document.getElementById("downloads").classList.remove("hidden");
    document.getElementById("preview").innerHTML = await (await fetch(base + "/preview")).text();
  };
});
</script>
</body>
</html>
`))

func (s *implServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Accept string }{Accept: strings.Join(media.SupportedExtensions(), ",")}
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error(r.Context(), "Render index: %v", err)
	}
}
