package dashboard

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>SportIQ 2.0</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background-color: #12151c; color: #e6e8ee; }
        .container { max-width: 1100px; margin: 0 auto; display: flex; gap: 24px; }
        .sidebar { width: 220px; flex-shrink: 0; background: #1b1f29; border-radius: 8px; padding: 16px; height: fit-content; }
        .main { flex: 1; }
        h1 { margin: 0 0 4px 0; font-size: 28px; }
        .caption { color: #8a90a2; margin-bottom: 20px; }
        select, button { width: 100%; padding: 8px; margin-top: 8px; border-radius: 6px; border: 1px solid #2c3242; background: #232836; color: #e6e8ee; }
        button { background: #3a7bfd; border: none; cursor: pointer; font-weight: 600; }
        .notice { padding: 10px 14px; border-radius: 6px; margin-bottom: 10px; }
        .notice.error { background: #4a1e24; color: #ff9aa5; }
        .notice.warning { background: #4a3d1e; color: #ffd27a; }
        .notice.info { background: #1e3a4a; color: #8fd3ff; }
        .match { background: #1b1f29; border-radius: 8px; padding: 14px 18px; margin-bottom: 12px; }
        .match h3 { margin: 0 0 10px 0; }
        .metrics { display: flex; gap: 32px; }
        .metric-label { color: #8a90a2; font-size: 12px; text-transform: uppercase; }
        .metric-value { font-size: 20px; font-weight: 600; }
        .home-win { color: #4cd98a; }
        .away-draw { color: #f0a34a; }
    </style>
</head>
<body>
    <div class="container">
        <form class="sidebar" method="POST" action="/fetch">
            <label for="sport">Select a sport</label>
            <select id="sport" name="sport">
                {{range .Sports}}<option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>
                {{end}}
            </select>
            <button type="submit">Fetch Matches</button>
        </form>
        <div class="main">
            <h1>SportIQ 2.0 — Multi-Sport Predictor</h1>
            <div class="caption">Live fixtures with generated odds and a home-win classifier</div>
            <div id="notices">
            {{range .Notices}}<div class="notice {{.Level}}">{{.Text}}</div>
            {{end}}
            </div>
            <div id="blocks">
            {{with .Outcome}}{{if .Blocks}}<h2>AI Predictions</h2>{{end}}
            {{range .Blocks}}<div class="match">
                <h3>{{.HomeTeam}} vs {{.AwayTeam}}</h3>
                <div class="metrics">
                    <div><div class="metric-label">Prediction</div><div class="metric-value {{if eq .Label "Home Win"}}home-win{{else}}away-draw{{end}}">{{.Label}}</div></div>
                    <div><div class="metric-label">Home Odds</div><div class="metric-value">{{.HomeOddsText}}</div></div>
                    <div><div class="metric-label">Away Odds</div><div class="metric-value">{{.AwayOddsText}}</div></div>
                </div>
            </div>
            {{end}}{{end}}
            </div>
        </div>
    </div>
    <script>
        const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
        const ws = new WebSocket(proto + '//' + location.host + '/ws');
        ws.onmessage = function(ev) {
            const out = JSON.parse(ev.data);
            const notices = document.getElementById('notices');
            const blocks = document.getElementById('blocks');
            notices.innerHTML = '';
            blocks.innerHTML = '';
            (out.notices || []).forEach(function(n) {
                const div = document.createElement('div');
                div.className = 'notice ' + n.level;
                div.textContent = n.text;
                notices.appendChild(div);
            });
            (out.blocks || []).forEach(function(b) {
                const div = document.createElement('div');
                div.className = 'match';
                const h = document.createElement('h3');
                h.textContent = b.home_team + ' vs ' + b.away_team;
                const m = document.createElement('div');
                m.className = 'metrics';
                m.textContent = b.label + ' | Home ' + b.home_odds.toFixed(2) + ' | Away ' + b.away_odds.toFixed(2);
                div.appendChild(h);
                div.appendChild(m);
                blocks.appendChild(div);
            });
            document.getElementById('sport').value = out.sport;
        };
    </script>
</body>
</html>
`
