package httpserver

import (
	"bytes"

	"github.com/tinytelemetry/mbtilens/internal/view"
)

const shellCSS = `
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
  margin: 0;
  transition: background-color 0.5s ease;
}
.container {
  display: flex; flex-direction: column; justify-content: center; align-items: center;
  min-height: 60vh; text-align: center; background-color: rgba(255, 255, 255, 0.85);
  padding: 40px; border-radius: 12px; box-shadow: 0 4px 20px rgba(0, 0, 0, 0.1);
  width: 90%; max-width: 400px; margin: 10vh auto; box-sizing: border-box;
}
.container.result { max-width: 500px; }
h1 { color: #333; margin-bottom: 24px; }
.result h1 { font-size: 2.5em; margin-bottom: 10px; }
input {
  width: 100%; padding: 12px; margin-bottom: 20px; border: 1px solid #ddd;
  border-radius: 8px; box-sizing: border-box; font-size: 16px;
}
button, a.back {
  padding: 12px 24px; border: none; background-color: #007bff; color: white;
  border-radius: 8px; cursor: pointer; font-size: 16px; font-weight: 600;
  text-decoration: none; transition: background-color 0.2s;
}
button { width: 100%; }
a.back { display: inline-block; margin-top: 25px; }
button:hover, a.back:hover { background-color: #0056b3; }
.error { color: red; height: 20px; }
.description { font-size: 1.1em; line-height: 1.6; color: #333; text-align: left; }
`

// shellJS keeps the browser a thin event source: it forwards fragment
// changes to /view and the submit action to /api/submit.
const shellJS = `
(function () {
  var root = document.getElementById('root');

  function render() {
    if (!location.hash) {
      location.hash = '/';
      return;
    }
    fetch('/view?fragment=' + encodeURIComponent(location.hash))
      .then(function (r) { return r.json(); })
      .then(function (v) {
        root.innerHTML = v.html;
        document.body.style.backgroundColor = v.background;
        wire();
      });
  }

  function submit() {
    var input = document.getElementById('mbtiInput');
    fetch('/api/submit', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ value: input.value })
    })
      .then(function (r) { return r.json().then(function (b) { return { ok: r.ok, body: b }; }); })
      .then(function (res) {
        if (res.ok) {
          location.hash = res.body.fragment;
        } else {
          document.getElementById('error-message').textContent = res.body.error;
        }
      });
  }

  function wire() {
    var button = document.getElementById('submit');
    var input = document.getElementById('mbtiInput');
    if (button) { button.onclick = submit; }
    if (input) {
      input.addEventListener('keyup', function (e) {
        if (e.key === 'Enter') { submit(); }
      });
      input.focus();
    }
  }

  window.addEventListener('hashchange', render);
  window.addEventListener('load', render);
})();
`

// renderShell builds the page served at "/": an empty content region plus
// the styles and the event forwarding script.
func renderShell(title string) ([]byte, error) {
	doc := view.NewDocument(title)
	doc.AddStyle(shellCSS)
	doc.AddScript(shellJS)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
