package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// IndexPage serves the scheduling form. The page is a thin client over the
// JSON API; the cookie-bearing request stays the sole source of truth for
// authorization.
// GET /
func (c *ScheduleController) IndexPage(ctx echo.Context) error {
	html := `
<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Scheduling Assistant</title>
<style>
:root{--bg:#f7f7f9;--fg:#111;--muted:#666;--primary:#2563eb;--border:#ddd}
body{font-family:Inter,Arial,Helvetica,sans-serif;margin:0;background:var(--bg);color:var(--fg)}
.container{max-width:640px;margin:40px auto;padding:0 20px}
.card{background:#fff;border:1px solid var(--border);border-radius:12px;padding:16px;margin-bottom:16px}
.title{font-size:22px;font-weight:700;margin-bottom:16px}
textarea{width:100%;box-sizing:border-box;padding:10px;border:1px solid var(--border);border-radius:8px;min-height:90px}
.btn{background:var(--primary);color:#fff;border:none;border-radius:8px;padding:10px 14px;cursor:pointer}
.btn:disabled{opacity:.6;cursor:not-allowed}
.btn.link{background:none;color:#dc2626;text-decoration:underline;padding:0}
.muted{color:var(--muted)}
.error{color:#dc2626;white-space:pre-wrap}
pre{background:#f3f4f6;padding:12px;border-radius:8px;white-space:pre-wrap}
</style>
</head>
<body>
<div class="container">
  <div class="title">Scheduling Assistant</div>
  <div class="card" id="auth">
    <button class="btn" id="login">Login with Google</button>
    <button class="btn link" id="logout" style="display:none">Logout</button>
  </div>
  <div class="card" id="form" style="display:none">
    <textarea id="input" placeholder="Type event description, e.g. 'Call Jack next Thursday at 3pm'"></textarea>
    <div style="margin-top:10px"><button class="btn" id="send">Send</button></div>
    <p class="error" id="error"></p>
    <pre id="result" style="display:none"></pre>
  </div>
</div>
<script>
const el = id => document.getElementById(id);
async function refreshSession(){
  const res = await fetch('/auth/session');
  const data = await res.json();
  el('login').style.display = data.loggedIn ? 'none' : '';
  el('logout').style.display = data.loggedIn ? '' : 'none';
  el('form').style.display = data.loggedIn ? '' : 'none';
}
el('login').onclick = async () => {
  const res = await fetch('/auth/url');
  if(!res.ok){ el('error').textContent = 'Missing server configuration'; return; }
  const data = await res.json();
  window.location.href = data.url;
};
el('logout').onclick = async () => {
  await fetch('/auth/logout', {method:'POST'});
  refreshSession();
};
el('send').onclick = async () => {
  el('error').textContent = '';
  el('result').style.display = 'none';
  const input = el('input').value;
  if(!input){ el('error').textContent = 'Please enter event text'; return; }
  el('send').disabled = true;
  try {
    const res = await fetch('/schedule', {
      method:'POST',
      headers:{'Content-Type':'application/json'},
      body: JSON.stringify({input})
    });
    const data = await res.json();
    if(data.success){
      el('result').textContent = 'Event created!\nTitle: ' + data.event.summary + '\nStart: ' + data.event.start.dateTime;
      el('result').style.display = '';
    } else {
      el('error').textContent = data.error || 'Unknown error';
    }
  } catch(e) {
    el('error').textContent = 'Request failed';
  } finally {
    el('send').disabled = false;
  }
};
refreshSession();
</script>
</body>
</html>`
	return ctx.HTML(http.StatusOK, html)
}
