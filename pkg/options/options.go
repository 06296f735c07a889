// Package options describes how an embedded player is configured: the
// variables handed to the player runtime, and the host-side switches that
// control network handling and background playback.
package options

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Origin is the default origin reported to the player runtime.
const Origin = "https://www.youtube.com"

// List types accepted by the runtime's list parameter.
const (
	ListTypePlaylist    = "playlist"
	ListTypeUserUploads = "user_uploads"
)

// Player holds the variables passed to the player runtime when it is created.
type Player struct {
	// Autoplay starts playback as soon as the first video is loaded.
	Autoplay bool
	// Controls is 1 to show the runtime's own web controls, 0 to hide them.
	Controls int
	// Rel is 1 to show related videos from any channel when playback ends.
	Rel int
	// IVLoadPolicy is 1 to show video annotations, 3 to hide them.
	IVLoadPolicy int
	// CCLoadPolicy is 1 to show captions by default.
	CCLoadPolicy int
	// CCLangPref is the preferred caption language (ISO 639-1).
	CCLangPref string
	// Lang is the interface language (hl).
	Lang string
	// Origin is the embedding origin.
	Origin string
	// Fullscreen is true to show the runtime's fullscreen button.
	Fullscreen bool
	// List identifies content to load on creation, interpreted by ListType.
	List string
	// ListType is ListTypePlaylist or ListTypeUserUploads when List is set.
	ListType string
	// Start is the offset in seconds to begin playback from.
	Start mo.Option[float64]
	// End is the offset in seconds to stop playback at.
	End mo.Option[float64]
}

// Default returns the player variables used when the host supplies none.
// The runtime's own controls are hidden because the host draws its chrome.
func Default() Player {
	return Player{
		Controls:     0,
		Rel:          0,
		IVLoadPolicy: 3,
		CCLoadPolicy: 0,
		Origin:       Origin,
	}
}

// Validate checks that every variable is within the range the runtime accepts.
func (p Player) Validate() error {
	if !lo.Contains([]int{0, 1}, p.Controls) {
		return fmt.Errorf("controls must be 0 or 1, got %d", p.Controls)
	}
	if !lo.Contains([]int{0, 1}, p.Rel) {
		return fmt.Errorf("rel must be 0 or 1, got %d", p.Rel)
	}
	if !lo.Contains([]int{1, 3}, p.IVLoadPolicy) {
		return fmt.Errorf("iv_load_policy must be 1 or 3, got %d", p.IVLoadPolicy)
	}
	if !lo.Contains([]int{0, 1}, p.CCLoadPolicy) {
		return fmt.Errorf("cc_load_policy must be 0 or 1, got %d", p.CCLoadPolicy)
	}
	if p.List != "" && !lo.Contains([]string{ListTypePlaylist, ListTypeUserUploads}, p.ListType) {
		return fmt.Errorf("list_type must be %q or %q when list is set, got %q", ListTypePlaylist, ListTypeUserUploads, p.ListType)
	}
	if start, ok := p.Start.Get(); ok && start < 0 {
		return fmt.Errorf("start must not be negative, got %v", start)
	}
	if end, ok := p.End.Get(); ok {
		if end < 0 {
			return fmt.Errorf("end must not be negative, got %v", end)
		}
		if start := p.Start.OrEmpty(); end <= start {
			return fmt.Errorf("end (%v) must be after start (%v)", end, start)
		}
	}
	return nil
}

// Vars returns the player variables in the form the runtime expects. Unset
// optional values are omitted.
func (p Player) Vars() map[string]any {
	vars := map[string]any{
		"autoplay":       boolInt(p.Autoplay),
		"controls":       p.Controls,
		"enablejsapi":    1,
		"fs":             boolInt(p.Fullscreen),
		"origin":         p.Origin,
		"rel":            p.Rel,
		"iv_load_policy": p.IVLoadPolicy,
		"cc_load_policy": p.CCLoadPolicy,
		"playsinline":    1,
	}
	if p.CCLangPref != "" {
		vars["cc_lang_pref"] = p.CCLangPref
	}
	if p.Lang != "" {
		vars["hl"] = p.Lang
	}
	if p.List != "" {
		vars["list"] = p.List
		vars["listType"] = p.ListType
	}
	if start, ok := p.Start.Get(); ok {
		vars["start"] = strconv.Itoa(int(start))
	}
	if end, ok := p.End.Get(); ok {
		vars["end"] = strconv.Itoa(int(end))
	}
	return vars
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Builder assembles Player variables starting from Default.
//
//	opts := options.NewBuilder().Controls(1).CCLangPref("en").Build()
type Builder struct {
	p Player
}

// NewBuilder starts from Default.
func NewBuilder() *Builder {
	return &Builder{p: Default()}
}

func (b *Builder) Autoplay(on bool) *Builder       { b.p.Autoplay = on; return b }
func (b *Builder) Controls(v int) *Builder         { b.p.Controls = v; return b }
func (b *Builder) Rel(v int) *Builder              { b.p.Rel = v; return b }
func (b *Builder) IVLoadPolicy(v int) *Builder     { b.p.IVLoadPolicy = v; return b }
func (b *Builder) CCLoadPolicy(v int) *Builder     { b.p.CCLoadPolicy = v; return b }
func (b *Builder) CCLangPref(lang string) *Builder { b.p.CCLangPref = lang; return b }
func (b *Builder) Lang(lang string) *Builder       { b.p.Lang = lang; return b }
func (b *Builder) Origin(origin string) *Builder   { b.p.Origin = origin; return b }
func (b *Builder) Fullscreen(on bool) *Builder     { b.p.Fullscreen = on; return b }
func (b *Builder) Start(seconds float64) *Builder  { b.p.Start = mo.Some(seconds); return b }
func (b *Builder) End(seconds float64) *Builder    { b.p.End = mo.Some(seconds); return b }

// List loads a list on creation. listType is ListTypePlaylist or ListTypeUserUploads.
func (b *Builder) List(list, listType string) *Builder {
	b.p.List = list
	b.p.ListType = listType
	return b
}

// Build returns the assembled variables.
func (b *Builder) Build() Player {
	return b.p
}
