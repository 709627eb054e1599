package web

// indexHTML is the single-page chat UI. It keeps the session id in
// memory and talks to /api/chat.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>LEGO AI Assistant</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; background: #f4f4f6; }
  header { background: #d01012; color: #fff; padding: 14px 20px; font-size: 1.2em; font-weight: 600; }
  #chat { max-width: 760px; margin: 0 auto; padding: 16px; }
  .msg { margin: 10px 0; padding: 10px 14px; border-radius: 10px; white-space: pre-wrap; }
  .user { background: #ffd500; margin-left: 20%; }
  .assistant { background: #fff; margin-right: 20%; border: 1px solid #ddd; }
  .sets { font-size: 0.85em; color: #555; margin-top: 6px; }
  form { display: flex; gap: 8px; max-width: 760px; margin: 0 auto 24px; padding: 0 16px; }
  input { flex: 1; padding: 10px; border: 1px solid #ccc; border-radius: 8px; font-size: 1em; }
  button { padding: 10px 18px; border: 0; border-radius: 8px; background: #d01012; color: #fff; font-size: 1em; cursor: pointer; }
  button:disabled { opacity: 0.5; }
</style>
</head>
<body>
<header>LEGO AI Assistant</header>
<div id="chat"></div>
<form id="form">
  <input id="input" placeholder="Ask about LEGO sets, themes, prices..." autocomplete="off" autofocus>
  <button id="send" type="submit">Send</button>
</form>
<script>
let sessionId = null;
const chat = document.getElementById("chat");
const form = document.getElementById("form");
const input = document.getElementById("input");
const send = document.getElementById("send");

function addMessage(role, text, sets) {
  const div = document.createElement("div");
  div.className = "msg " + role;
  div.textContent = text;
  if (sets && sets.length) {
    const list = document.createElement("div");
    list.className = "sets";
    list.textContent = "Sets: " + sets.map(s => s.set_id + " " + s.name).join(", ");
    div.appendChild(list);
  }
  chat.appendChild(div);
  div.scrollIntoView();
}

form.addEventListener("submit", async (e) => {
  e.preventDefault();
  const message = input.value.trim();
  if (!message) return;
  addMessage("user", message);
  input.value = "";
  send.disabled = true;
  try {
    const resp = await fetch("/api/chat", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ session_id: sessionId, message }),
    });
    const data = await resp.json();
    if (!resp.ok) {
      addMessage("assistant", "Error: " + (data.error || resp.statusText));
    } else {
      sessionId = data.session_id;
      addMessage("assistant", data.response, data.sets);
    }
  } catch (err) {
    addMessage("assistant", "Error: " + err);
  } finally {
    send.disabled = false;
    input.focus();
  }
});
</script>
</body>
</html>
`
