package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cosmicanimator/internal/actions"
	"cosmicanimator/internal/cli/scheme/colours"
	"cosmicanimator/internal/config"
	"cosmicanimator/internal/generator"
	"cosmicanimator/internal/narration"
	"cosmicanimator/internal/narration/tts"
	"cosmicanimator/internal/player"
	"cosmicanimator/internal/render"
	"cosmicanimator/internal/scenario"
	"cosmicanimator/internal/stage"
	"cosmicanimator/internal/theme"
)

func main() {
	config.SetDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown: stop the run, leave the terminal clean.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		fmt.Println("\n" + colours.Warning.Sprint("Interrupted, stopping."))
	}()

	rootCmd := &cobra.Command{
		Use:   "cosmicanimator",
		Short: "Compile declarative scenarios into narrated animations",
		Long: `CosmicAnimator compiles declarative JSON scenarios into scene programs
with narrated, caption-synchronized playback.

  generate   scenario -> program artifact
  play       live preview: speech, terminal captions
  render     headless run: SRT captions + external renderer`,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}

	generateCmd := &cobra.Command{
		Use:   "generate [scenario]",
		Short: "Compile a scenario into a program artifact",
		Long:  "Load a scenario from a file or URL, resolve its actions, and write the program JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("output")
			return runGenerate(args[0], out)
		},
	}
	generateCmd.Flags().StringP("output", "o", "program.json", "Program output path")

	playCmd := &cobra.Command{
		Use:   "play [program]",
		Short: "Play a program live with speech and captions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			noSubs, _ := cmd.Flags().GetBool("no-subtitles")
			return runPlay(ctx, args[0], dryRun, noSubs)
		},
	}
	playCmd.Flags().Bool("dry-run", false, "Use the mock voice, no audio output")
	playCmd.Flags().Bool("no-subtitles", false, "Disable caption display")

	renderCmd := &cobra.Command{
		Use:   "render [program]",
		Short: "Run headless and produce the SRT caption track",
		Long:  "Execute the program without display, write the SRT file, and invoke the configured renderer if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("output")
			return runRender(ctx, args[0], out)
		},
	}
	renderCmd.Flags().StringP("output", "o", ".", "Output directory")

	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "List the voices of the configured TTS engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVoices()
		},
	}

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the synthesized audio cache",
	}
	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show audio cache size",
			RunE:  func(cmd *cobra.Command, args []string) error { return runCacheStats() },
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all cached audio",
			RunE:  func(cmd *cobra.Command, args []string) error { return runCacheClear() },
		},
	)

	rootCmd.AddCommand(generateCmd, playCmd, renderCmd, voicesCmd, cacheCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(source, output string) error {
	sc, err := scenario.Load(source)
	if err != nil {
		return err
	}
	prog, err := generator.Compile(sc, actions.NewRegistry())
	if err != nil {
		return err
	}
	if err := prog.WriteJSON(output); err != nil {
		return err
	}
	colours.Success.Printf("Compiled %d steps -> %s\n", len(prog.Steps), output)
	return nil
}

// pipeline wires a clock, captions, narration and player for one run.
func pipeline(th *theme.Theme, engine tts.Synthesizer, renderer stage.CaptionRenderer, live bool) (*player.Player, *narration.Orchestra, *stage.CueRecorder) {
	clock := stage.NewSceneClock(th.FPS)
	clock.SetRealtime(live)

	recorder := stage.NewCueRecorder(clock)
	var display stage.CaptionRenderer = recorder
	if renderer != nil {
		display = teeRenderer{renderer, recorder}
	}

	overlay := narration.NewOverlay(clock, display, th.OverlayConfig())
	sched := narration.NewScheduler(narration.NewPolicy(th.PolicyConfig()), overlay)
	sched.SetOptions(th.ScheduleOptions())

	var speaker narration.Speaker = engine
	if live {
		speaker = liveSpeaker{engine}
	}
	orch := narration.NewOrchestra(clock, speaker, sched)
	return player.New(clock, orch, recorder), orch, recorder
}

// teeRenderer drives the live display and the cue track together.
type teeRenderer struct {
	display  stage.CaptionRenderer
	recorder *stage.CueRecorder
}

func (t teeRenderer) Show(text string) {
	t.display.Show(text)
	t.recorder.Show(text)
}

func (t teeRenderer) Clear() {
	t.display.Clear()
	t.recorder.Clear()
}

// liveSpeaker synthesizes and starts audible playback before returning, so
// speech runs while the clock paces the narration window in real time.
type liveSpeaker struct {
	engine tts.Synthesizer
}

func (s liveSpeaker) Synthesize(ctx context.Context, text string) (tts.Clip, error) {
	clip, err := s.engine.Synthesize(ctx, text)
	if err != nil {
		return clip, err
	}
	if err := tts.Play(clip); err != nil {
		logrus.WithError(err).Warn("audio playback unavailable, continuing silent")
	}
	return clip, nil
}

func runPlay(ctx context.Context, programPath string, dryRun, noSubs bool) error {
	prog, err := generator.ReadJSON(programPath)
	if err != nil {
		return err
	}
	th := theme.FromViper()

	cfg := th.Voice
	if dryRun {
		cfg.Type = tts.EngineTypeMock.String()
	}
	engine, err := tts.New(cfg)
	if err != nil {
		return err
	}
	colours.Info.Printf("Voice engine: %s\n", engine.Name())

	pl, orch, _ := pipeline(th, engine, stage.NewTermRenderer(os.Stdout, th.Caption.WrapChars+6), !dryRun)
	orch.EnableSubtitles(!noSubs)

	if _, err := pl.Run(ctx, prog); err != nil {
		return err
	}
	colours.Success.Println("Done.")
	return nil
}

func runRender(ctx context.Context, programPath, outDir string) error {
	prog, err := generator.ReadJSON(programPath)
	if err != nil {
		return err
	}
	th := theme.FromViper()

	engine, err := tts.New(th.Voice)
	if err != nil {
		return err
	}

	pl, _, recorder := pipeline(th, engine, nil, false)
	if _, err := pl.Run(ctx, prog); err != nil {
		return err
	}

	srtPath := filepath.Join(outDir, prog.ID+".srt")
	if err := render.WriteSRT(recorder.Cues(), srtPath); err != nil {
		return err
	}
	colours.Success.Printf("Captions -> %s\n", srtPath)

	if command := viper.GetString("render.command"); command != "" {
		return render.Run(ctx, command, programPath, srtPath)
	}
	colours.Info.Println("No render.command configured, skipping video render.")
	return nil
}

func runVoices() error {
	th := theme.FromViper()
	engine, err := tts.New(th.Voice)
	if err != nil {
		return err
	}
	voices, err := engine.Voices()
	if err != nil {
		return err
	}
	colours.Title.Printf("Voices (%s):\n", engine.Name())
	for _, v := range voices {
		fmt.Println("  " + v)
	}
	return nil
}

func cacheDir() string {
	if dir := viper.GetString("tts.cache_path"); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "cosmicanimator")
}

func runCacheStats() error {
	info, err := tts.CacheStats(cacheDir())
	if err != nil {
		return err
	}
	if !info.Exists {
		colours.Info.Println("Cache is empty.")
		return nil
	}
	colours.Info.Printf("%s: %d files, %.1f MB\n", info.Dir, info.Files, info.SizeMB())
	return nil
}

func runCacheClear() error {
	if err := tts.ClearCache(cacheDir()); err != nil {
		return err
	}
	colours.Success.Println("Cache cleared.")
	return nil
}

// Configuration management with Viper
func init() {
	godotenv.Load()

	viper.SetConfigName("cosmicanimator")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.cosmicanimator")
	viper.AddConfigPath(".")

	viper.ReadInConfig()
}
