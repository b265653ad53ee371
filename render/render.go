// Package render turns a finished bundle into a standalone HTML document.
// It is a formatting layer only: everything it shows was already assembled
// and validated upstream, and absent sections are simply omitted.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"baseball-preview-go/bundle"
	"baseball-preview-go/logcolors"
	"baseball-preview-go/metrics"
	"baseball-preview-go/stats"
	"baseball-preview-go/utils"

	log "github.com/sirupsen/logrus"
)

var funcs = template.FuncMap{
	"pct":      func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"f1":       func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"f2":       func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"inc":      func(i int) int { return i + 1 },
	"deref":    func(p *int) int { return *p },
	"lastname": utils.LastName,
	"gb":       gamesBehind,
	"final":    finalRE24,
	"last7": func(cutoff string, series []metrics.PlayerGameRE24) string {
		return fmt.Sprintf("%+.2f", metrics.SumLastN(series, 7, cutoff))
	},
}

// gamesBehind formats a games-behind value, with the leader shown as a dash.
func gamesBehind(v float64) string {
	if v == 0 {
		return "-"
	}
	if v == float64(int(v)) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// finalRE24 is the season-to-date cumulative value of a player's series.
func finalRE24(series []metrics.PlayerGameRE24) string {
	if len(series) == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%+.2f", metrics.SeasonTotal(series))
}

var page = template.Must(template.New("preview").Funcs(funcs).Parse(previewHTML))

// HTML renders one bundle into a complete HTML document.
func HTML(b *bundle.Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, b); err != nil {
		return nil, fmt.Errorf("failed to render %s @ %s %s: %w",
			b.AwayTeam, b.HomeTeam, b.GameDate, err)
	}
	stats.Get().RecordRender()
	return buf.Bytes(), nil
}

// WriteFile renders a bundle and writes the document under dir, returning
// the written path.
func WriteFile(dir string, b *bundle.Bundle) (string, error) {
	doc, err := HTML(b)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create render directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.html", b.AwayTeam, b.HomeTeam, b.GameDate))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Infof("%s Wrote %s (%d bytes)", logcolors.LogRender, path, len(doc))
	return path, nil
}

const previewHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.AwayTeam}} @ {{.HomeTeam}} — {{.GameDate}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2rem; color: #1a1a1a; }
h1 { margin-bottom: 0; }
h2 { margin-top: 2rem; border-bottom: 1px solid #ccc; padding-bottom: 0.2rem; }
table { border-collapse: collapse; margin-top: 0.5rem; }
th, td { padding: 0.25rem 0.75rem; text-align: left; border-bottom: 1px solid #eee; }
th { background: #f5f5f5; }
.meta { color: #555; }
.off { color: #999; }
.today { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.AwayTeamFull}} ({{.AwayRecord}}) @ {{.HomeTeamFull}} ({{.HomeRecord}})</h1>
<p class="meta">{{.GameDate}} {{.GameTime}} · {{.Venue}}{{if .TemperatureF}} · {{deref .TemperatureF}}°F{{end}}</p>

{{if .Series}}
<p>Game {{.Series.GameNumber}} of {{.Series.TotalGames}} vs {{.Series.Opponent}}
(series {{.Series.SeriesWins}}-{{.Series.SeriesLosses}},
season {{.Series.SeasonWins}}-{{.Series.SeasonLosses}}{{if .Series.PrevOpponent}},
last series {{.Series.PrevLocation}}{{.Series.PrevOpponent}}{{end}}).</p>
{{end}}

<h2>Probable Pitchers</h2>
<table>
<tr><th></th><th>Pitcher</th><th>W-L</th><th>ERA</th><th>WHIP</th><th>IP</th><th>K/9</th></tr>
{{with .AwayPitcher}}<tr><td>{{$.AwayTeam}}</td><td>{{.Name}}</td><td>{{.Wins}}-{{.Losses}}</td><td>{{f2 .ERA}}</td><td>{{f2 .WHIP}}</td><td>{{f1 .Innings}}</td><td>{{f1 .KPer9}}</td></tr>{{end}}
{{with .HomePitcher}}<tr><td>{{$.HomeTeam}}</td><td>{{.Name}}</td><td>{{.Wins}}-{{.Losses}}</td><td>{{f2 .ERA}}</td><td>{{f2 .WHIP}}</td><td>{{f1 .Innings}}</td><td>{{f1 .KPer9}}</td></tr>{{end}}
</table>

{{if .AwayPitcherPitches}}
<h2>{{.AwayTeam}} Pitch Mix</h2>
<table>
<tr><th>Pitch</th><th>Usage</th><th>Velo</th><th>Spin</th><th>Whiff</th></tr>
{{range .AwayPitcherPitches}}<tr><td>{{.PitchType}}</td><td>{{pct .UsagePct}}</td><td>{{f1 .AvgVelocity}}</td><td>{{f1 .AvgSpin}}</td><td>{{pct .WhiffPct}}</td></tr>
{{end}}</table>
{{end}}

{{if .HomePitcherPitches}}
<h2>{{.HomeTeam}} Pitch Mix</h2>
<table>
<tr><th>Pitch</th><th>Usage</th><th>Velo</th><th>Spin</th><th>Whiff</th></tr>
{{range .HomePitcherPitches}}<tr><td>{{.PitchType}}</td><td>{{pct .UsagePct}}</td><td>{{f1 .AvgVelocity}}</td><td>{{f1 .AvgSpin}}</td><td>{{pct .WhiffPct}}</td></tr>
{{end}}</table>
{{end}}

{{if .AwayLineup}}
<h2>{{.AwayTeam}} Lineup</h2>
<table>
<tr><th>#</th><th>Player</th><th>Pos</th><th>Slash</th><th>HR</th><th>RBI</th><th>wRC+</th><th>RE24</th><th>RE24 L7</th></tr>
{{range $i, $p := .AwayLineup}}<tr><td>{{inc $i}}</td><td>{{$p.Name}}</td><td>{{$p.Position}}</td><td>{{$p.Slash}}</td><td>{{$p.HR}}</td><td>{{$p.RBI}}</td><td>{{with $p.Advanced}}{{.WRCPlus}}{{end}}</td><td>{{final (index $.AwayRE24 (lastname $p.Name))}}</td><td>{{last7 $.GameDate (index $.AwayRE24 (lastname $p.Name))}}</td></tr>
{{end}}</table>
{{end}}

{{if .HomeLineup}}
<h2>{{.HomeTeam}} Lineup</h2>
<table>
<tr><th>#</th><th>Player</th><th>Pos</th><th>Slash</th><th>HR</th><th>RBI</th><th>wRC+</th><th>RE24</th><th>RE24 L7</th></tr>
{{range $i, $p := .HomeLineup}}<tr><td>{{inc $i}}</td><td>{{$p.Name}}</td><td>{{$p.Position}}</td><td>{{$p.Slash}}</td><td>{{$p.HR}}</td><td>{{$p.RBI}}</td><td>{{with $p.Advanced}}{{.WRCPlus}}{{end}}</td><td>{{final (index $.HomeRE24 (lastname $p.Name))}}</td><td>{{last7 $.GameDate (index $.HomeRE24 (lastname $p.Name))}}</td></tr>
{{end}}</table>
{{end}}

{{if .DivisionRace}}
<h2>Division Race</h2>
{{range $division, $rows := .DivisionRace}}
<h3>{{$division}}</h3>
<table>
<tr><th>Team</th><th>W</th><th>L</th><th>GB</th></tr>
{{range $rows}}<tr><td>{{.Team}}</td><td>{{.Wins}}</td><td>{{.Losses}}</td><td>{{gb .GamesBehind}}</td></tr>
{{end}}</table>
{{end}}
{{end}}

{{if .ScheduleContext}}
<h2>Schedule</h2>
<table>
<tr><th>Date</th><th>Opponent</th><th>Result</th></tr>
{{range .ScheduleContext}}<tr{{if .IsToday}} class="today"{{else if .IsOffDay}} class="off"{{end}}><td>{{.GameDate}}</td><td>{{if .IsOffDay}}OFF{{else}}{{.Opponent}}{{end}}</td><td>{{if .Result}}{{.Result}} {{.Score}}{{else}}{{.GameTime}}{{end}}</td></tr>
{{end}}</table>
{{end}}

{{if or .AwayInjuries .HomeInjuries}}
<h2>Injuries</h2>
<table>
<tr><th>Team</th><th>Player</th><th>Status</th></tr>
{{range .AwayInjuries}}<tr><td>{{$.AwayTeam}}</td><td>{{.PlayerName}}</td><td>{{.Status}}</td></tr>
{{end}}{{range .HomeInjuries}}<tr><td>{{$.HomeTeam}}</td><td>{{.PlayerName}}</td><td>{{.Status}}</td></tr>
{{end}}</table>
{{end}}

{{if .Transactions}}
<h2>Recent Transactions</h2>
<table>
<tr><th>Date</th><th>Move</th></tr>
{{range .Transactions}}<tr><td>{{.Date}}</td><td>{{.Description}}</td></tr>
{{end}}</table>
{{end}}

{{if .Leaders}}
<h2>League Leaders</h2>
<table>
<tr><th>#</th><th>Player</th><th>Team</th><th>Value</th></tr>
{{range .Leaders}}<tr><td>{{.Rank}}</td><td>{{.Name}}</td><td>{{.Team}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
{{end}}

</body>
</html>
`
