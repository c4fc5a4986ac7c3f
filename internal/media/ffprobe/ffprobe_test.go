package ffprobe

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{Duration: "123.45"},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestDurationFallsBackToStream(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "audio", Duration: "61.5"}},
	}
	if result.DurationSeconds() != 61.5 {
		t.Fatalf("expected stream duration fallback, got %v", result.DurationSeconds())
	}
}

func TestDurationHandlesInvalidNumbers(t *testing.T) {
	result := Result{Format: Format{Duration: "bad"}}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
}

func TestWholeSeconds(t *testing.T) {
	tests := map[float64]int{
		200:      200,
		199.2:    200,
		0:        0,
		-3:       0,
		math.NaN(): 0,
	}
	for in, want := range tests {
		if got := WholeSeconds(in); got != want {
			t.Errorf("WholeSeconds(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestProberDurationUsesRunner(t *testing.T) {
	prober := NewProber("")
	var gotName string
	var gotArgs []string
	prober.WithCommandRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return []byte(`{"streams":[{"index":0,"codec_type":"audio","duration":"199.9"}],"format":{"duration":"200.04"}}`), nil
	})

	seconds, err := prober.Duration(context.Background(), "/music/mix.mp3")
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if seconds != 200.04 {
		t.Fatalf("unexpected duration: %v", seconds)
	}
	if gotName != "ffprobe" {
		t.Fatalf("expected default binary ffprobe, got %q", gotName)
	}
	if gotArgs[len(gotArgs)-1] != "/music/mix.mp3" || gotArgs[len(gotArgs)-2] != "--" {
		t.Fatalf("expected path after --, got %v", gotArgs)
	}
}

func TestProberDurationErrors(t *testing.T) {
	prober := NewProber("ffprobe")
	prober.WithCommandRunner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte("mix.mp3: No such file or directory"), errors.New("exit status 1")
	})
	_, err := prober.Duration(context.Background(), "mix.mp3")
	if err == nil || !strings.Contains(err.Error(), "No such file") {
		t.Fatalf("expected ffprobe output in error, got %v", err)
	}

	prober.WithCommandRunner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte(`{"streams":[],"format":{}}`), nil
	})
	if _, err := prober.Duration(context.Background(), "mix.mp3"); !errors.Is(err, ErrNoDuration) {
		t.Fatalf("expected ErrNoDuration, got %v", err)
	}

	prober.WithCommandRunner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte(`{"streams":[{"index":0,"codec_type":"video"}],"format":{"duration":"60.0"}}`), nil
	})
	if _, err := prober.Duration(context.Background(), "mix.mp4"); !errors.Is(err, ErrNoAudioStream) {
		t.Fatalf("expected ErrNoAudioStream, got %v", err)
	}
}
