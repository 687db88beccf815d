package server

// dashboardHTML is a self-contained shell that polls the JSON API. It keeps
// the binary deployable without a separate asset pipeline.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>CloudPulse</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; background: #0f172a; color: #e2e8f0; }
  h1 { font-size: 1.4rem; }
  .cards { display: flex; flex-wrap: wrap; gap: 1rem; }
  .card { background: #1e293b; border-radius: 8px; padding: 1rem 1.5rem; min-width: 160px; }
  .card .label { color: #94a3b8; font-size: 0.8rem; text-transform: uppercase; }
  .card .value { font-size: 1.6rem; margin-top: 0.25rem; }
  .warn { color: #facc15; }
  .crit { color: #f87171; }
  pre { background: #1e293b; padding: 1rem; border-radius: 8px; overflow-x: auto; }
</style>
</head>
<body>
<h1>CloudPulse</h1>
<div class="cards">
  <div class="card"><div class="label">CPU</div><div class="value" id="cpu">-</div></div>
  <div class="card"><div class="label">Memory</div><div class="value" id="memory">-</div></div>
  <div class="card"><div class="label">Disk</div><div class="value" id="disk">-</div></div>
  <div class="card"><div class="label">Visitors</div><div class="value" id="visitors">-</div></div>
  <div class="card"><div class="label">Status</div><div class="value" id="status">-</div></div>
</div>
<h2>Alerts</h2>
<pre id="alerts">none</pre>
<script>
function classFor(pct, warn, crit) {
  if (pct > crit) return 'crit';
  if (pct > warn) return 'warn';
  return '';
}
async function refresh() {
  try {
    const health = await (await fetch('/health')).json();
    const m = health.metrics;
    const set = (id, pct, warn, crit) => {
      const el = document.getElementById(id);
      el.textContent = pct.toFixed(1) + '%';
      el.className = 'value ' + classFor(pct, warn, crit);
    };
    set('cpu', m.cpu, 80, 90);
    set('memory', m.memory, 85, 95);
    set('disk', m.disk, 90, 90);
    document.getElementById('status').textContent = health.status;
    document.getElementById('alerts').textContent =
      health.alerts.length ? JSON.stringify(health.alerts, null, 2) : 'none';
    const visitors = await (await fetch('/api/visitors')).json();
    document.getElementById('visitors').textContent = visitors.total_visitors;
  } catch (e) { /* server restarting */ }
}
refresh();
setInterval(refresh, 5000);
</script>
</body>
</html>
`
