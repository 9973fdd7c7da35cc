package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/notefall/charter/audio"
	"github.com/notefall/charter/chart"
	"github.com/notefall/charter/charter"
	"github.com/notefall/charter/logger"
)

// env holds defaults resolved once from CHARTER_* variables; flags win.
type env struct {
	OutputDir string `envconfig:"OUTPUT_DIR" default:"."`
	Format    string `default:"json"`
}

var generateFlags struct {
	audioPath        string
	songID           string
	instruments      []string
	outputDir        string
	format           string
	bpm              float64
	gridDivision     int
	sustainThreshold float64
	minHoldDuration  float64
	holdGap          float64
	laneStrategy     string
	onsetStrategy    string
	seed             uint64
	multiBand        bool
	fillEmpty        bool
	verbose          bool
}

func init() {
	var defaults env
	if err := envconfig.Process("charter", &defaults); err != nil {
		fmt.Fprintln(os.Stderr, "bad CHARTER_ environment:", err)
		os.Exit(1)
	}

	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.audioPath, "audio", "a", "", "path to the audio file (wav)")
	f.StringVarP(&generateFlags.songID, "song-id", "s", "", "song id for the charts (default: random uuid)")
	f.StringSliceVarP(&generateFlags.instruments, "instrument", "i", charter.Instruments, "instruments to chart")
	f.StringVarP(&generateFlags.outputDir, "output", "o", defaults.OutputDir, "output directory")
	f.StringVar(&generateFlags.format, "format", defaults.Format, "chart format (json or chart)")
	f.Float64Var(&generateFlags.bpm, "bpm", 0, "BPM override (0 = auto-detect)")
	f.IntVar(&generateFlags.gridDivision, "grid-division", 4, "quantization subdivisions per beat")
	f.Float64Var(&generateFlags.sustainThreshold, "sustain-threshold", 0.5, "band energy threshold for holds")
	f.Float64Var(&generateFlags.minHoldDuration, "min-hold-duration", 0.25, "minimum hold length in seconds")
	f.Float64Var(&generateFlags.holdGap, "hold-gap", 0.2, "max gap merged between same-lane notes")
	f.StringVar(&generateFlags.laneStrategy, "lane-strategy", "sequential", "lane strategy (sequential, frequency, random)")
	f.StringVar(&generateFlags.onsetStrategy, "onset-strategy", "energy", "onset strategy (energy, flux)")
	f.Uint64Var(&generateFlags.seed, "seed", 0, "random lane strategy seed (0 = current time)")
	f.BoolVar(&generateFlags.multiBand, "multiband", false, "one spectrogram pass shared across instruments")
	f.BoolVar(&generateFlags.fillEmpty, "fill-empty", false, "emit beat-aligned notes when a chart comes out empty")
	f.BoolVarP(&generateFlags.verbose, "verbose", "v", false, "debug logging")

	generateCmd.MarkFlagRequired("audio")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates charts from an audio file",
	Long:  `Generates charts for every requested instrument and difficulty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate()
	},
}

func generate() error {
	log := logger.New(generateFlags.verbose)
	defer log.Sync()

	format, err := chart.ParseFormat(generateFlags.format)
	if err != nil {
		return err
	}

	cfg := charter.DefaultConfig()
	cfg.BPM = generateFlags.bpm
	cfg.GridDivision = generateFlags.gridDivision
	cfg.SustainThreshold = generateFlags.sustainThreshold
	cfg.MinHoldDuration = generateFlags.minHoldDuration
	cfg.HoldGap = generateFlags.holdGap
	cfg.LaneStrategy = generateFlags.laneStrategy
	cfg.OnsetStrategy = generateFlags.onsetStrategy
	cfg.MultiBand = generateFlags.multiBand
	cfg.FillEmpty = generateFlags.fillEmpty
	cfg.Seed = generateFlags.seed
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	gen, err := charter.NewGenerator(cfg, log)
	if err != nil {
		return err
	}

	buf, err := audio.ReadFile(generateFlags.audioPath)
	if err != nil {
		return err
	}
	log.Infow("audio loaded",
		"path", generateFlags.audioPath,
		"sample_rate", buf.SampleRate,
		"channels", buf.Channels,
		"duration_sec", buf.Duration())

	songID := generateFlags.songID
	if songID == "" {
		songID = uuid.New().String()
		log.Infow("no song id given, generated one", "song_id", songID)
	}

	results := gen.GenerateBatch(buf, songID, generateFlags.instruments)

	var failures int
	fmt.Println("\n=== Chart Summary ===")
	for _, res := range results {
		if res.Err != nil {
			failures++
			log.Errorw("instrument failed", "instrument", res.Instrument, "error", res.Err)
			continue
		}
		for _, c := range res.Charts {
			path, err := chart.WriteFile(c, generateFlags.outputDir, format)
			if err != nil {
				failures++
				log.Errorw("write failed", "instrument", res.Instrument, "error", err)
				continue
			}
			fmt.Printf("%-8s %-10s | %4d notes | %d columns | %s\n",
				res.Instrument, c.Difficulty, len(c.Notes), c.Columns, path)
		}
	}
	fmt.Println("=== End Summary ===")

	if failures == len(results) && len(results) > 0 {
		return fmt.Errorf("all %d instruments failed", failures)
	}
	return nil
}
