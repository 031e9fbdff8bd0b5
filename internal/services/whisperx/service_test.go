package whisperx

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pitchside/internal/media/ffprobe"
	"pitchside/internal/services"
	"pitchside/internal/testsupport"
)

func writeWAV(t *testing.T, path string) {
	t.Helper()
	const rate = 1000
	samples := make([]int16, 3*rate)
	for i := range samples {
		samples[i] = 8000
		if i < rate {
			samples[i] = 50
		}
	}
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(samples)*2))
	buf.WriteString("WAVEfmt ")
	for _, field := range []any{uint32(16), uint16(1), uint16(1), uint32(rate), uint32(rate * 2), uint16(2), uint16(16)} {
		_ = binary.Write(&buf, binary.LittleEndian, field)
	}
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(samples)*2))
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
}

func argValue(args []string, flag string) string {
	idx := slices.Index(args, flag)
	if idx < 0 || idx+1 >= len(args) {
		return ""
	}
	return args[idx+1]
}

type fakeTools struct {
	t        *testing.T
	segments []Segment
	uvxCalls atomic.Int32
	ffmpeg   [][]string
}

func (f *fakeTools) run(_ context.Context, name string, args ...string) error {
	switch name {
	case FFmpegCommand:
		f.ffmpeg = append(f.ffmpeg, args)
		writeWAV(f.t, args[len(args)-1])
	case UVXCommand:
		f.uvxCalls.Add(1)
		source := args[slices.Index(args, "whisperx")+1]
		outDir := argValue(args, "--output_dir")
		base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		data, _ := json.Marshal(map[string]any{"segments": f.segments})
		if err := os.WriteFile(filepath.Join(outDir, base+".json"), data, 0o644); err != nil {
			f.t.Fatalf("write whisperx output: %v", err)
		}
	default:
		f.t.Fatalf("unexpected command %s", name)
	}
	return nil
}

func probeWith(streams ...ffprobe.Stream) Prober {
	return func(context.Context, string) (ffprobe.Result, error) {
		return ffprobe.Result{Streams: streams}, nil
	}
}

func newTestService(t *testing.T, cfg Config, tools *fakeTools, streams ...ffprobe.Stream) *Service {
	t.Helper()
	svc := NewService(cfg, "", "", nil)
	svc.WithCommandRunner(tools.run)
	svc.WithProber(probeWith(streams...))
	return svc
}

func TestTranscribeMediaFormatsAndCaches(t *testing.T) {
	base := t.TempDir()
	media := filepath.Join(base, "match.mp4")
	testsupport.WriteFile(t, media, 2048)

	tools := &fakeTools{t: t, segments: []Segment{
		{Text: " Amazing goal by Messi ", Start: 30.4, End: 32},
		{Text: "", Start: 40, End: 41},
		{Text: "Ronaldo scores", Start: 105, End: 107},
	}}
	cfg := Config{WorkDir: filepath.Join(base, "work"), CacheDir: filepath.Join(base, "cache")}
	svc := newTestService(t, cfg, tools,
		ffprobe.Stream{Index: 0, CodecType: "video"},
		ffprobe.Stream{Index: 1, CodecType: "audio", Channels: 6, Tags: map[string]string{"language": "eng"}},
		ffprobe.Stream{Index: 2, CodecType: "audio", Channels: 2, Tags: map[string]string{"language": "spa"}},
	)

	transcript, err := svc.TranscribeMedia(context.Background(), media, "es")
	if err != nil {
		t.Fatalf("TranscribeMedia: %v", err)
	}
	if want := "0:30 Amazing goal by Messi\n1:45 Ronaldo scores"; transcript.Text != want {
		t.Fatalf("text = %q, want %q", transcript.Text, want)
	}
	if transcript.Cached {
		t.Fatal("first run should not be cached")
	}
	if got := argValue(tools.ffmpeg[0], "-map"); got != "0:2" {
		t.Fatalf("expected Spanish stream mapped, got %q", got)
	}
	if transcript.Diagnostics.SampleRate != 1000 || !transcript.Diagnostics.HasPotentialSpeech {
		t.Fatalf("unexpected diagnostics %+v", transcript.Diagnostics)
	}
	if transcript.Coverage <= 0 || transcript.Coverage > 1 {
		t.Fatalf("unexpected coverage %v", transcript.Coverage)
	}

	again, err := svc.TranscribeMedia(context.Background(), media, "es")
	if err != nil {
		t.Fatalf("second TranscribeMedia: %v", err)
	}
	if !again.Cached || again.Text != transcript.Text {
		t.Fatalf("expected cached transcript, got %+v", again)
	}
	if tools.uvxCalls.Load() != 1 {
		t.Fatalf("expected one whisperx run, got %d", tools.uvxCalls.Load())
	}

	entries, _ := os.ReadDir(cfg.WorkDir)
	if len(entries) != 0 {
		t.Fatalf("expected work dir cleaned up, found %d entries", len(entries))
	}
}

func TestTranscribeMediaErrors(t *testing.T) {
	base := t.TempDir()
	media := filepath.Join(base, "match.mp4")
	testsupport.WriteFile(t, media, 16)

	tools := &fakeTools{t: t}
	svc := newTestService(t, Config{WorkDir: base}, tools, ffprobe.Stream{Index: 0, CodecType: "video"})
	if _, err := svc.TranscribeMedia(context.Background(), media, "en"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for video without audio, got %v", err)
	}

	svc = newTestService(t, Config{WorkDir: base}, tools, ffprobe.Stream{Index: 1, CodecType: "audio"})
	if _, err := svc.TranscribeMedia(context.Background(), media, "en"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for empty transcript, got %v", err)
	}

	if _, err := svc.TranscribeMedia(context.Background(), filepath.Join(base, "missing.mp4"), "en"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for missing media, got %v", err)
	}
}

func TestBuildArgs(t *testing.T) {
	svc := NewService(Config{VADMethod: VADMethodPyannote, HFToken: "hf"}, "", "", nil)
	args := svc.buildArgs("/tmp/a.wav", "/tmp/out", "Spanish")
	if argValue(args, "--language") != "es" {
		t.Fatalf("expected --language es, got %v", args)
	}
	if argValue(args, "--hf_token") != "hf" || argValue(args, "--vad_method") != VADMethodPyannote {
		t.Fatalf("expected pyannote args, got %v", args)
	}
	if argValue(args, "--device") != CPUDevice || argValue(args, "--model") != DefaultModel {
		t.Fatalf("unexpected device/model args %v", args)
	}

	args = NewService(Config{CUDAEnabled: true}, "", "", nil).buildArgs("/tmp/a.wav", "/tmp/out", "klingon")
	if slices.Contains(args, "--language") {
		t.Fatalf("unknown language should be omitted, got %v", args)
	}
	if argValue(args, "--device") != CUDADevice || argValue(args, "--index-url") != CUDAIndexURL {
		t.Fatalf("expected CUDA args, got %v", args)
	}
}

func TestFormatCommentary(t *testing.T) {
	got := FormatCommentary([]Segment{
		{Text: "Kick off", Start: 0},
		{Text: "  ", Start: 5},
		{Text: "Goal  for\nBarcelona", Start: 5430.9},
	})
	if want := "0:00 Kick off\n90:30 Goal for Barcelona"; got != want {
		t.Fatalf("FormatCommentary = %q, want %q", got, want)
	}
	if FormatClock(-3) != "0:00" || FormatClock(61.99) != "1:01" {
		t.Fatal("unexpected clock formatting")
	}
}

func TestSegmentCoverage(t *testing.T) {
	segments := []Segment{
		{Text: "a", Start: 0, End: 4},
		{Text: "b", Start: 2, End: 6},
		{Text: "", Start: 6, End: 10},
	}
	if got := SegmentCoverage(segments, 10); got != 0.6 {
		t.Fatalf("coverage = %v, want 0.6", got)
	}
	if SegmentCoverage(segments, 0) != 0 {
		t.Fatal("expected zero coverage for zero duration")
	}
	if SegmentCoverage(segments, 3) != 1 {
		t.Fatal("expected coverage clamped to 1")
	}
}

func TestCacheLockExcludes(t *testing.T) {
	cache := NewCache(t.TempDir())
	unlock, err := cache.Lock(context.Background(), "key")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if _, err := cache.Lock(ctx, "key"); err == nil {
		t.Fatal("expected second lock to time out while held")
	}

	unlock()
	unlock2, err := cache.Lock(context.Background(), "key")
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	unlock2()
}

func TestCacheIgnoresCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir)
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Load("bad"); ok || err != nil {
		t.Fatalf("expected miss for corrupt entry, got ok=%v err=%v", ok, err)
	}
	if err := cache.Store("good", Transcript{Text: "0:01 hi", Cached: true}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, ok, err := cache.Load("good")
	if err != nil || !ok || got.Text != "0:01 hi" || !got.Cached {
		t.Fatalf("unexpected load %+v ok=%v err=%v", got, ok, err)
	}
}
