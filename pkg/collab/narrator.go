package collab

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Narration defaults.
const (
	DefaultSpeechEndpoint = "https://translate.google.com/translate_tts"
	DefaultLanguage       = "en"
	DefaultAudioPath      = "order.mp3"
	// MaxChunkLength bounds the characters sent per speech request.
	MaxChunkLength = 100
)

// Narrator reads a summary back to the customer.
type Narrator interface {
	Narrate(ctx context.Context, text string) error
}

// ConsoleNarrator prints the summary instead of speaking it.
type ConsoleNarrator struct {
	out io.Writer
}

// NewConsoleNarrator writes to out, stdout when nil.
func NewConsoleNarrator(out io.Writer) *ConsoleNarrator {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNarrator{out: out}
}

// Narrate prints the text.
func (n *ConsoleNarrator) Narrate(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(n.out, text); err != nil {
		return collaboratorErr("console narrator", err)
	}
	return nil
}

// SpeechOption configures a SpeechNarrator.
type SpeechOption func(*SpeechNarrator)

// WithSpeechClient overrides the HTTP client.
func WithSpeechClient(client *http.Client) SpeechOption {
	return func(n *SpeechNarrator) {
		if client != nil {
			n.client = client
		}
	}
}

// WithSpeechEndpoint overrides the speech endpoint.
func WithSpeechEndpoint(endpoint string) SpeechOption {
	return func(n *SpeechNarrator) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			n.endpoint = endpoint
		}
	}
}

// WithLanguage sets the spoken language code.
func WithLanguage(lang string) SpeechOption {
	return func(n *SpeechNarrator) {
		if lang = strings.TrimSpace(lang); lang != "" {
			n.lang = lang
		}
	}
}

// WithAudioPath sets where the concatenated audio is written.
func WithAudioPath(path string) SpeechOption {
	return func(n *SpeechNarrator) {
		if path = strings.TrimSpace(path); path != "" {
			n.audioPath = path
		}
	}
}

// WithPlayer sets the audio player. A nil player skips playback.
func WithPlayer(player Player) SpeechOption {
	return func(n *SpeechNarrator) {
		n.player = player
	}
}

// SpeechNarrator converts text to MP3 audio through a translate-tts style
// endpoint, saves it and hands the file to a Player.
type SpeechNarrator struct {
	endpoint  string
	lang      string
	audioPath string
	client    *http.Client
	player    Player
}

var _ Narrator = (*SpeechNarrator)(nil)

// NewSpeechNarrator builds a narrator with the platform default player.
func NewSpeechNarrator(options ...SpeechOption) *SpeechNarrator {
	n := &SpeechNarrator{
		endpoint:  DefaultSpeechEndpoint,
		lang:      DefaultLanguage,
		audioPath: DefaultAudioPath,
		client:    &http.Client{Timeout: 30 * time.Second},
		player:    DefaultPlayer(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	return n
}

// AudioPath reports where audio is written.
func (n *SpeechNarrator) AudioPath() string {
	return n.audioPath
}

// Narrate fetches audio for every chunk of text, writes the joined stream to
// the audio path and plays it.
func (n *SpeechNarrator) Narrate(ctx context.Context, text string) error {
	chunks := SplitText(text, MaxChunkLength)
	if len(chunks) == 0 {
		return collaboratorErr("speech", errors.New("nothing to speak"))
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		data, err := n.fetch(ctx, chunk, i, len(chunks))
		if err != nil {
			return collaboratorErr("speech", fmt.Errorf("chunk %d: %w", i, err))
		}
		audio.Write(data)
	}

	if dir := filepath.Dir(n.audioPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return collaboratorErr("speech", err)
		}
	}
	if err := os.WriteFile(n.audioPath, audio.Bytes(), 0o644); err != nil {
		return collaboratorErr("speech", fmt.Errorf("write audio: %w", err))
	}

	if n.player == nil {
		return nil
	}
	if err := n.player.Play(ctx, n.audioPath); err != nil {
		return collaboratorErr("player", err)
	}
	return nil
}

func (n *SpeechNarrator) fetch(ctx context.Context, chunk string, idx, total int) ([]byte, error) {
	endpoint, err := url.Parse(n.endpoint)
	if err != nil {
		return nil, fmt.Errorf("endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("ie", "UTF-8")
	query.Set("q", chunk)
	query.Set("tl", n.lang)
	query.Set("client", "tw-ob")
	query.Set("total", strconv.Itoa(total))
	query.Set("idx", strconv.Itoa(idx))
	query.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(payload))
	}
	if len(payload) == 0 {
		return nil, errors.New("empty audio")
	}
	return payload, nil
}

// SplitText breaks text into chunks of at most max characters. Lines are kept
// apart so each summary line is spoken as its own phrase, words are never
// split unless a single word exceeds max.
func SplitText(text string, max int) []string {
	if max <= 0 {
		max = MaxChunkLength
	}
	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		var current strings.Builder
		currentLen := 0
		flush := func() {
			if currentLen > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
				currentLen = 0
			}
		}
		for _, word := range strings.Fields(line) {
			for utf8.RuneCountInString(word) > max {
				flush()
				runes := []rune(word)
				chunks = append(chunks, string(runes[:max]))
				word = string(runes[max:])
			}
			wordLen := utf8.RuneCountInString(word)
			if wordLen == 0 {
				continue
			}
			if currentLen > 0 && currentLen+1+wordLen > max {
				flush()
			}
			if currentLen > 0 {
				current.WriteByte(' ')
				currentLen++
			}
			current.WriteString(word)
			currentLen += wordLen
		}
		flush()
	}
	return chunks
}
