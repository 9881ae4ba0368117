package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Glyphs used for world entities.
const (
	glyphGround      = '▓'
	glyphPlatform    = '▀'
	glyphMoving      = '≡'
	glyphGoal        = '▒'
	glyphPit         = '░'
	glyphPlayer      = '█'
	glyphEnemy       = 'M'
	glyphCollectible = '◆'
	glyphDimmed      = '◇'
	glyphPickup      = '♥'
	glyphNote        = '?'
)

// Renderer draws snapshots into a screen at a fixed world-to-cell scale.
type Renderer struct {
	CellW float64 // World units per column
	CellH float64 // World units per row
}

// NewRenderer creates a renderer. Non-positive scales default to 12x24.
func NewRenderer(cellW, cellH float64) Renderer {
	if cellW <= 0 {
		cellW = 12
	}
	if cellH <= 0 {
		cellH = 24
	}
	return Renderer{CellW: cellW, CellH: cellH}
}

// cellSpan converts a world rectangle to a cell rectangle relative to the
// camera. Any overlap with a cell covers it, so thin objects stay visible.
func (r Renderer) cellSpan(rect core.Rect, cam *game.Camera) (x, y, w, h int) {
	x0 := int(math.Floor((rect.X - cam.X) / r.CellW))
	y0 := int(math.Floor((rect.Y - cam.Y) / r.CellH))
	x1 := int(math.Ceil((rect.Right() - cam.X) / r.CellW))
	y1 := int(math.Ceil((rect.Bottom() - cam.Y) / r.CellH))
	return x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0)
}

// cellAt converts a world point to the cell that contains it.
func (r Renderer) cellAt(x, y float64, cam *game.Camera) (int, int) {
	return int(math.Floor((x - cam.X) / r.CellW)), int(math.Floor((y - cam.Y) / r.CellH))
}

func (r Renderer) fill(s *core.Screen, rect core.Rect, cam *game.Camera, g rune, c core.Color) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	x, y, w, h := r.cellSpan(rect, cam)
	s.FillRect(x, y, w, h, g, c)
}

// Draw renders the world of snap into s. Overlays are drawn separately.
func (r Renderer) Draw(s *core.Screen, snap *game.Snapshot) {
	s.Clear()
	cam := &snap.Camera

	r.drawPits(s, snap)

	for i := range snap.Platforms {
		p := &snap.Platforms[i]
		switch {
		case p.Role == levelgen.RoleGround:
			r.fill(s, p.Rect(), cam, glyphGround, core.ColorGround)
		case p.IsMoving():
			r.fill(s, p.Rect(), cam, glyphMoving, core.ColorMoving)
		default:
			r.fill(s, p.Rect(), cam, glyphPlatform, core.ColorPlatform)
		}
	}

	r.fill(s, snap.Goal, cam, glyphGoal, core.ColorGoal)

	for i := range snap.Collectibles {
		c := &snap.Collectibles[i]
		if c.Collected {
			continue
		}
		g := glyphCollectible
		if math.Sin(c.Pulse) < 0 {
			g = glyphDimmed
		}
		x, y := r.cellAt(c.X, c.Y, cam)
		s.SetColored(x, y, g, core.ColorCollectible)
	}
	for i := range snap.Pickups {
		h := &snap.Pickups[i]
		if h.Collected {
			continue
		}
		x, y := r.cellAt(h.X, h.Y, cam)
		s.SetColored(x, y, glyphPickup, core.ColorPickup)
	}
	for i := range snap.Notes {
		n := &snap.Notes[i]
		if n.Collected {
			continue
		}
		x, y := r.cellAt(n.X, n.Y, cam)
		s.SetColored(x, y, glyphNote, core.ColorNote)
	}

	for i := range snap.Enemies {
		r.fill(s, snap.Enemies[i].Rect(), cam, glyphEnemy, core.ColorEnemy)
	}

	r.drawPlayer(s, snap)
}

// drawPits shades the space below the ground line between ground segments.
func (r Renderer) drawPits(s *core.Screen, snap *game.Snapshot) {
	var ground []game.Platform
	for _, p := range snap.Platforms {
		if p.Role == levelgen.RoleGround {
			ground = append(ground, p)
		}
	}
	depth := math.Max(r.CellH, snap.LevelHeight-snap.GroundY)
	for i := 1; i < len(ground); i++ {
		left := ground[i-1].Rect().Right()
		gap := ground[i].X - left
		if gap <= 0 {
			continue
		}
		x, y, w, _ := r.cellSpan(core.NewRect(left, snap.GroundY, gap, depth), &snap.Camera)
		// Shrink to the cells fully inside the gap so segment edges stay solid
		s.FillRect(x+1, y+1, w-2, s.Height()-y-1, glyphPit, core.ColorPit)
	}
}

// drawPlayer draws the avatar. It blinks while invulnerable.
func (r Renderer) drawPlayer(s *core.Screen, snap *game.Snapshot) {
	p := &snap.Player
	if p.IsInvulnerable() && int(p.Invulnerable*10)%2 == 0 {
		return
	}
	color := core.ColorPlayer
	if snap.State == game.StateGameOver {
		color = core.ColorPlayerDead
	}
	x, y, w, h := r.cellSpan(p.Rect(), &snap.Camera)
	s.FillRect(x, y, w, h, glyphPlayer, color)

	eye := x + w - 1
	if p.Facing < 0 {
		eye = x
	}
	s.SetColored(eye, y, '•', core.ColorEye)
}

// overlay is a centered text box drawn over the world.
type overlay struct {
	title string
	lines []string
	color core.Color
}

// overlayFor returns the overlay the snapshot calls for, if any.
func overlayFor(snap *game.Snapshot, keys KeyMap) (overlay, bool) {
	switch {
	case snap.ShowingNote && len(snap.CollectedNotes) > 0:
		note := snap.CollectedNotes[len(snap.CollectedNotes)-1]
		lines := wrapText(note.Text, 44)
		lines = append(lines, "", "press any key")
		return overlay{title: note.Title, lines: lines, color: core.ColorNote}, true

	case snap.State == game.StateIdle:
		lines := wrapText(snap.Story, 44)
		lines = append(lines, "", keys.Start.Help().Key+" to start")
		return overlay{title: "LEVEL 1", lines: lines, color: core.ColorBrightWhite}, true

	case snap.State == game.StateVictory && snap.Won:
		return overlay{
			title: "YOU WIN",
			lines: []string{"All levels cleared!", "", "r to play again  ·  b for menu"},
			color: core.ColorBrightGreen,
		}, true

	case snap.State == game.StateVictory:
		lines := []string{"Level " + strconv.Itoa(snap.Level) + " complete"}
		if snap.Story != "" {
			lines = append(lines, "")
			lines = append(lines, wrapText(snap.Story, 44)...)
		}
		lines = append(lines, "", progressBar(snap.StoryProgress, 30))
		return overlay{title: "LEVEL " + strconv.Itoa(snap.Level+1), lines: lines, color: core.ColorBrightYellow}, true

	case snap.State == game.StateGameOver:
		return overlay{
			title: "GAME OVER",
			lines: []string{"Score: " + strconv.Itoa(snap.Score), "", "r to retry  ·  b for menu"},
			color: core.ColorBrightRed,
		}, true

	case snap.State == game.StatePaused:
		return overlay{title: "PAUSED", lines: []string{"p to resume"}, color: core.ColorWhite}, true
	}
	return overlay{}, false
}

// drawOverlay draws a bordered box centered on the screen.
func drawOverlay(s *core.Screen, o overlay) {
	inner := len([]rune(o.title))
	for _, l := range o.lines {
		inner = core.Max(inner, len([]rune(l)))
	}
	w := core.Min(inner+4, s.Width())
	h := core.Min(len(o.lines)+4, s.Height())
	x0 := (s.Width() - w) / 2
	y0 := (s.Height() - h) / 2

	s.FillRect(x0, y0, w, h, ' ', core.ColorDefault)
	s.DrawBox(x0, y0, w, h)
	s.DrawTextColored(x0+(w-len([]rune(o.title)))/2, y0+1, o.title, o.color)
	for i, l := range o.lines {
		s.DrawText(x0+(w-len([]rune(l)))/2, y0+3+i, l)
	}
}

// wrapText splits text into lines of at most width runes on word boundaries.
func wrapText(text string, width int) []string {
	var lines []string
	var line []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		if len(line) > 0 && len(line)+1+len(w) > width {
			lines = append(lines, string(line))
			line = line[:0]
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, w...)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

// progressBar renders a fraction in [0, 1] as a bar of the given width.
func progressBar(fraction float64, width int) string {
	filled := int(core.ClampF(fraction, 0, 1) * float64(width))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}
