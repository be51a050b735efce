package criteria

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"clipseek/internal/timecode"
)

// Kind names one independently toggleable filter fragment.
type Kind string

const (
	KindText     Kind = "text"
	KindColor    Kind = "color"
	KindFile     Kind = "file"
	KindObjects  Kind = "objects"
	KindWords    Kind = "words"
	KindInterval Kind = "interval"
)

// DefaultColor matches the color swatch's initial value.
const DefaultColor = "#0ea5e9"

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Snapshot is a read-only copy of the panel state used for rendering.
type Snapshot struct {
	EnableText     bool
	EnableColor    bool
	EnableFile     bool
	EnableObjects  bool
	EnableWords    bool
	EnableInterval bool

	Text          string
	Color         string
	File          string
	Objects       []string
	ObjectDraft   string
	Words         string
	IntervalFrom  string
	IntervalTo    string
	IntervalError string
}

// Builder accumulates the toggles and values of every filter kind and turns
// them into a Criteria on demand. It is safe for use from concurrent request
// handlers; the single onBuild consumer is invoked synchronously under the
// builder's lock ordering (build happens-before notify).
type Builder struct {
	mu sync.Mutex

	enabled map[Kind]bool

	text        string
	color       string
	file        string
	objects     []string
	objectDraft string
	words       string
	interval    timecode.Interval

	onBuild func(Criteria)
}

// NewBuilder returns a builder in its default state: only the text filter
// enabled, all values cleared. onBuild may be nil.
func NewBuilder(onBuild func(Criteria)) *Builder {
	b := &Builder{onBuild: onBuild}
	b.applyDefaults()
	return b
}

func (b *Builder) applyDefaults() {
	b.enabled = map[Kind]bool{
		KindText:     true,
		KindColor:    false,
		KindFile:     false,
		KindObjects:  false,
		KindWords:    false,
		KindInterval: false,
	}
	b.text = ""
	b.color = DefaultColor
	b.file = ""
	b.objects = nil
	b.objectDraft = ""
	b.words = ""
	b.interval = timecode.Interval{From: "00:00:00", To: "00:00:00"}
}

// Toggle flips the enable state of one filter kind.
func (b *Builder) Toggle(kind Kind) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.enabled[kind]; !ok {
		return fmt.Errorf("unknown filter kind: %s", kind)
	}
	b.enabled[kind] = !b.enabled[kind]
	return nil
}

// Enabled reports the toggle state of one filter kind.
func (b *Builder) Enabled(kind Kind) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled[kind]
}

func (b *Builder) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

// SetColor stores a hex swatch value of the form #rrggbb.
func (b *Builder) SetColor(color string) error {
	if !hexColorRe.MatchString(color) {
		return fmt.Errorf("invalid color value: %q", color)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.color = color
	return nil
}

// SetFile records the stored filename of an uploaded reference image/video and
// enables the media filter, mirroring the drop-to-enable behavior of the panel.
func (b *Builder) SetFile(filename string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.file = filename
	b.enabled[KindFile] = true
}

func (b *Builder) SetWords(words string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.words = words
}

// SetObjectDraft stores the in-progress tag text.
func (b *Builder) SetObjectDraft(draft string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objectDraft = draft
}

// AddObject commits a tag. Blank input and exact-match duplicates are
// suppressed; insertion order is preserved. The draft is cleared on success.
func (b *Builder) AddObject(value string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	val := strings.TrimSpace(value)
	if val == "" {
		return
	}
	for _, o := range b.objects {
		if o == val {
			return
		}
	}
	b.objects = append(b.objects, val)
	b.objectDraft = ""
}

// RemoveObject drops a tag by exact value.
func (b *Builder) RemoveObject(value string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, o := range b.objects {
		if o == value {
			b.objects = append(b.objects[:i], b.objects[i+1:]...)
			return
		}
	}
}

// BackspaceObject handles backspace in the tag input: with a non-empty draft
// it is a plain text edit and nothing happens here; with an empty draft the
// most-recently-added tag is removed.
func (b *Builder) BackspaceObject() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.objectDraft != "" || len(b.objects) == 0 {
		return
	}
	b.objects = b.objects[:len(b.objects)-1]
}

// Endpoint selects one bound of the time interval.
type Endpoint string

const (
	EndpointFrom Endpoint = "from"
	EndpointTo   Endpoint = "to"
)

// SetIntervalPart replaces one HH/MM/SS component of an interval bound with
// the sanitized, clamped form of raw.
func (b *Builder) SetIntervalPart(ep Endpoint, idx int, raw string) error {
	if idx < 0 || idx > 2 {
		return fmt.Errorf("invalid time component index: %d", idx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch ep {
	case EndpointFrom:
		b.interval.From = timecode.SetPart(b.interval.From, idx, raw)
	case EndpointTo:
		b.interval.To = timecode.SetPart(b.interval.To, idx, raw)
	default:
		return fmt.Errorf("invalid interval endpoint: %s", ep)
	}
	return nil
}

// BlurInterval normalizes one interval bound on focus loss: empty components
// become 00 and every component is zero-padded.
func (b *Builder) BlurInterval(ep Endpoint) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch ep {
	case EndpointFrom:
		b.interval.From = timecode.Normalize(b.interval.From)
	case EndpointTo:
		b.interval.To = timecode.Normalize(b.interval.To)
	default:
		return fmt.Errorf("invalid interval endpoint: %s", ep)
	}
	return nil
}

// IntervalError returns the inline validation message for the interval, or ""
// when the interval is disabled or valid.
func (b *Builder) IntervalError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.intervalErrorLocked()
}

func (b *Builder) intervalErrorLocked() string {
	if !b.enabled[KindInterval] {
		return ""
	}
	if err := b.interval.Validate(); err != nil {
		return err.Error()
	}
	return ""
}

// Build assembles the criteria from the current state and notifies the
// consumer. A fragment is included only if its toggle is on and its
// kind-specific emptiness/validity rule passes; color and file have no empty
// state and are included unconditionally when toggled.
func (b *Builder) Build() Criteria {
	b.mu.Lock()

	var c Criteria
	if b.enabled[KindText] {
		if text := strings.TrimSpace(b.text); text != "" {
			c.Text = text
		}
	}
	if b.enabled[KindColor] {
		c.Color = b.color
	}
	if b.enabled[KindFile] && b.file != "" {
		c.File = b.file
	}
	if b.enabled[KindObjects] && len(b.objects) > 0 {
		c.Objects = append([]string(nil), b.objects...)
	}
	if b.enabled[KindWords] {
		if words := strings.TrimSpace(b.words); words != "" {
			c.Words = words
		}
	}
	if b.enabled[KindInterval] && b.interval.Valid() {
		iv := b.interval
		c.Interval = &iv
	}

	onBuild := b.onBuild
	b.mu.Unlock()

	if onBuild != nil {
		onBuild(c)
	}
	return c
}

// Reset restores every toggle and value to its default, then immediately
// re-runs the build+notify sequence so the consumer observes the
// empty-criteria state.
func (b *Builder) Reset() Criteria {
	b.mu.Lock()
	b.applyDefaults()
	b.mu.Unlock()

	return b.Build()
}

// Snapshot copies the current panel state for rendering.
func (b *Builder) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Snapshot{
		EnableText:     b.enabled[KindText],
		EnableColor:    b.enabled[KindColor],
		EnableFile:     b.enabled[KindFile],
		EnableObjects:  b.enabled[KindObjects],
		EnableWords:    b.enabled[KindWords],
		EnableInterval: b.enabled[KindInterval],
		Text:           b.text,
		Color:          b.color,
		File:           b.file,
		Objects:        append([]string(nil), b.objects...),
		ObjectDraft:    b.objectDraft,
		Words:          b.words,
		IntervalFrom:   b.interval.From,
		IntervalTo:     b.interval.To,
		IntervalError:  b.intervalErrorLocked(),
	}
}
