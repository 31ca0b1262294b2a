package tts

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

const defaultGoogleVoice = "en-US-Chirp3-HD-Charon"

// GoogleEngine synthesizes MP3 audio through Cloud Text-to-Speech. Clips
// are cached under an md5 content key so re-rendering a scenario reuses
// audio instead of re-billing the API.
type GoogleEngine struct {
	client   *texttospeech.Client
	voice    string
	speed    float64
	volume   float64
	cacheDir string
}

func newGoogleEngine(config Config) (*GoogleEngine, error) {
	ctx := context.Background()
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	cacheDir := config.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "cosmicanimator")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	voice := config.Voice
	if voice == "" || voice == "default" {
		voice = defaultGoogleVoice
	}

	return &GoogleEngine{
		client:   client,
		voice:    voice,
		speed:    config.Speed,
		volume:   config.Volume,
		cacheDir: cacheDir,
	}, nil
}

func (g *GoogleEngine) Name() string { return EngineTypeGoogle.String() }

func (g *GoogleEngine) Synthesize(ctx context.Context, text string) (Clip, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Clip{}, nil
	}

	clipPath := filepath.Join(g.cacheDir, fmt.Sprintf("google_%s.mp3", contentKey(text+g.voice)))

	if _, err := os.Stat(clipPath); os.IsNotExist(err) {
		audioCfg := &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		}
		// Chirp voices reject speakingRate/pitch; only set them elsewhere.
		if !strings.Contains(strings.ToLower(g.voice), "chirp") {
			if g.speed > 0 {
				audioCfg.SpeakingRate = g.speed
			}
			if g.volume != 0 {
				audioCfg.VolumeGainDb = g.volume
			}
		}

		req := &texttospeechpb.SynthesizeSpeechRequest{
			Input: &texttospeechpb.SynthesisInput{
				InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
			},
			Voice: &texttospeechpb.VoiceSelectionParams{
				LanguageCode: languageFromVoice(g.voice),
				Name:         g.voice,
			},
			AudioConfig: audioCfg,
		}
		resp, err := g.client.SynthesizeSpeech(ctx, req)
		if err != nil {
			return Clip{}, fmt.Errorf("failed to synthesize speech: %w", err)
		}
		if err := os.WriteFile(clipPath, resp.AudioContent, 0644); err != nil {
			return Clip{}, fmt.Errorf("failed to write MP3 to %s: %w", clipPath, err)
		}
	}

	dur, err := probeMP3(clipPath)
	if err != nil {
		return Clip{}, fmt.Errorf("failed to probe %s: %w", clipPath, err)
	}
	return Clip{Path: clipPath, Duration: dur}, nil
}

func (g *GoogleEngine) Voices() ([]string, error) {
	resp, err := g.client.ListVoices(context.Background(), &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, err
	}
	voices := make([]string, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		voices = append(voices, v.Name)
	}
	return voices, nil
}

func (g *GoogleEngine) Close() error {
	return g.client.Close()
}

// languageFromVoice extracts the BCP-47 language code prefix from a Google
// voice name ("en-US-Chirp3-HD-Charon" → "en-US").
func languageFromVoice(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}

func contentKey(s string) string {
	h := md5.New()
	io.WriteString(h, s)
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}
