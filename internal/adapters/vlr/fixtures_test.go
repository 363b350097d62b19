package vlr

import (
	"fmt"
	"strings"
)

// Fragmentos mínimos con la misma forma que las páginas de vlr.gg.

type fxPlayer struct {
	name, abbrev, agent string
	acs, k, d, a        int
}

func fxSummaryRow(p fxPlayer) string {
	stat := func(v string) string {
		return `<td class="mod-stat"><span class="side mod-both">` + v + `</span><span class="side mod-t">0</span></td>`
	}
	return `<tr>
<td class="mod-player"><a href="/player/1"><div class="text-of">` + p.name + `</div><div class="ge-text-light">` + p.abbrev + `</div></a></td>
<td class="mod-agents"><span><img src="/a.png" alt="` + p.agent + `" title="` + p.agent + `"></span></td>
` + stat("1.10") + stat(fmt.Sprint(p.acs)) + stat(fmt.Sprint(p.k)) +
		`<td class="mod-stat mod-vlr-deaths"><span class="side mod-both"><span class="num">/</span>` + fmt.Sprint(p.d) + `<span class="num">/</span></span></td>` +
		stat(fmt.Sprint(p.a)) + `</tr>`
}

func fxTable(rows []fxPlayer) string {
	var b strings.Builder
	b.WriteString(`<div><table class="wf-table-inset mod-overview"><thead><tr><th></th></tr></thead><tbody>`)
	for _, p := range rows {
		b.WriteString(fxSummaryRow(p))
	}
	b.WriteString(`</tbody></table></div>`)
	return b.String()
}

func fxSummaryGame(id, mapName, pick string, team1, team2 string, s1, s2 int, p1, p2 []fxPlayer) string {
	win1, win2 := "", ""
	if s1 > s2 {
		win1 = " mod-win"
	} else {
		win2 = " mod-win"
	}
	picked := ""
	if pick != "" {
		picked = `<span class="picked ` + pick + `">PICK</span>`
	}
	return `<div class="vm-stats-game" data-game-id="` + id + `">
<div class="vm-stats-game-header">
  <div class="team"><div class="score` + win1 + `">` + fmt.Sprint(s1) + `</div><div><div class="team-name">` + team1 + `</div></div></div>
  <div class="map"><div><span style="position: relative;">` + mapName + picked + `</span></div><div class="map-duration">45:12</div></div>
  <div class="team mod-right"><div><div class="team-name">` + team2 + `</div></div><div class="score` + win2 + `">` + fmt.Sprint(s2) + `</div></div>
</div>
<div>` + fxTable(p1) + fxTable(p2) + `</div>
</div>`
}

type fxPerf struct {
	name, abbrev                   string
	k2, k3, k4, k5, v2, v3, v4, v5 int
}

func fxPerfRow(p fxPerf) string {
	cell := func(v int) string {
		if v == 0 {
			return `<td><div class="stats-sq"></div></td>`
		}
		return fmt.Sprintf(`<td><div class="stats-sq mod-x">%d<div class="wf-popable-contents">round 3</div></div></td>`, v)
	}
	return `<tr><td><div class="team"><img src="/a.png">` + p.name + ` <div class="team-tag">` + p.abbrev + `</div></div></td>` +
		`<td><img alt="jett"></td>` + cell(p.k2) + cell(p.k3) + cell(p.k4) + cell(p.k5) + `<td></td>` +
		cell(p.v2) + cell(p.v3) + cell(p.v4) + cell(p.v5) + `<td>1</td><td>0</td></tr>`
}

func fxPerfGame(id string, rows []fxPerf) string {
	var b strings.Builder
	b.WriteString(`<div class="vm-stats-game" data-game-id="` + id + `"><div>kills matrix</div><div><table class="wf-table-inset mod-adv-stats"><tbody>`)
	b.WriteString(`<tr><th></th><th></th><th>2K</th><th>3K</th><th>4K</th><th>5K</th><th>PL</th><th>1v2</th><th>1v3</th><th>1v4</th><th>1v5</th><th>ECON</th><th>SPP</th></tr>`)
	for _, r := range rows {
		b.WriteString(fxPerfRow(r))
	}
	b.WriteString(`</tbody></table></div></div>`)
	return b.String()
}

func fxPage(body ...string) string {
	return `<!DOCTYPE html><html><head><title>vlr</title></head><body><div class="col mod-3">` +
		strings.Join(body, "\n") + `</div></body></html>`
}

var (
	fxSEN = []fxPlayer{
		{"TenZ", "SEN", "jett", 287, 25, 14, 4},
		{"zekken", "SEN", "raze", 230, 20, 15, 6},
		{"Sacy", "SEN", "sova", 180, 14, 15, 10},
		{"johnqt", "SEN", "omen", 150, 11, 16, 8},
		{"Zellsis", "SEN", "killjoy", 170, 13, 15, 5},
	}
	fxLOUD = []fxPlayer{
		{"aspas", "LOUD", "jett", 260, 22, 16, 3},
		{"Less", "LOUD", "viper", 190, 15, 17, 7},
		{"Saadhak", "LOUD", "sova", 170, 13, 17, 9},
		{"cauanzin", "LOUD", "skye", 160, 12, 16, 11},
		{"tuyz", "LOUD", "omen", 140, 10, 17, 6},
	}
)

func fxSummaryPage() string {
	return fxPage(
		`<div class="vm-stats-game" data-game-id="all"><div>all maps</div></div>`,
		fxSummaryGame("101", "Bind", "mod-1", "Sentinels", "LOUD", 13, 9, fxSEN, fxLOUD),
		fxSummaryGame("102", "Haven", "mod-2", "Sentinels", "LOUD", 7, 13, fxSEN, fxLOUD),
		`<div class="vm-stats-game" data-game-id="103"><div>Data not available</div></div>`,
	)
}

func fxPerfPage() string {
	rows := func(first fxPerf) []fxPerf {
		out := []fxPerf{first}
		for _, p := range fxSEN[1:] {
			out = append(out, fxPerf{name: p.name, abbrev: "SEN"})
		}
		for _, p := range fxLOUD {
			out = append(out, fxPerf{name: p.name, abbrev: "LOUD"})
		}
		return out
	}
	return fxPage(
		`<div class="vm-stats-game" data-game-id="all"><div></div></div>`,
		fxPerfGame("101", rows(fxPerf{name: "TenZ", abbrev: "SEN", k2: 4, k3: 2, k5: 1, v2: 1, v3: 1})),
		fxPerfGame("102", rows(fxPerf{name: "TenZ", abbrev: "SEN", k2: 1})),
	)
}

func fxTeamPage() string {
	item := func(alias, real string) string {
		return `<div class="team-roster-item"><a href="/player/x"><div class="team-roster-item-img"></div><div class="team-roster-item-name"><div class="team-roster-item-name-alias">` +
			alias + `</div><div class="team-roster-item-name-real">` + real + `</div></div></a></div>`
	}
	return `<html><body>
<div class="wf-card mod-header mod-full team-header">
  <div class="team-header-logo"><img src="/logo.png"></div>
  <div class="team-header-desc"><div class="team-header-name"><h1 class="wf-title">Sentinels</h1><h2 class="wf-title team-header-tag">SEN</h2></div></div>
</div>
<div class="team-summary-container-1"><div class="wf-card">
  <div class="wf-module-label">Current Roster</div>
  <div>` + item("TenZ", "Tyson Ngo") + item("zekken", "Zachary Patrone") + item("Sacy", "Gustavo Rossi") + `</div>
  <div>` + item("kaplan", "Coach") + `</div>
</div></div>
</body></html>`
}
