package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"meetingreel/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check encoding engine prerequisites",
	Long: `Verify that ffmpeg and ffprobe are callable and that the filters the
pipeline depends on (lavfi sources, drawtext, concat demuxer) actually work,
using tiny throwaway encodes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		ffprobePath := strings.Replace(cfg.FFmpegPath, "ffmpeg", "ffprobe", 1)
		ok := true

		if path, err := exec.LookPath(cfg.FFmpegPath); err != nil {
			fmt.Printf("✗ ffmpeg not found (%s)\n", cfg.FFmpegPath)
			ok = false
		} else {
			fmt.Printf("✓ ffmpeg: %s\n", path)
		}

		if path, err := exec.LookPath(ffprobePath); err != nil {
			fmt.Printf("✗ ffprobe not found (%s)\n", ffprobePath)
			ok = false
		} else {
			fmt.Printf("✓ ffprobe: %s\n", path)
		}

		if !ok {
			fmt.Println("\nEngine unavailable: runs will produce text-manifest fallbacks only.")
			return
		}

		if runSilent(cfg.FFmpegPath,
			"-hide_banner", "-nostdin", "-loglevel", "error",
			"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
			"-c:v", cfg.VideoCodec, "-f", "null", "-",
		) {
			fmt.Printf("✓ video encoder %s works\n", cfg.VideoCodec)
		} else {
			fmt.Printf("✗ video encoder %s test failed\n", cfg.VideoCodec)
			ok = false
		}

		if runSilent(cfg.FFmpegPath,
			"-hide_banner", "-nostdin", "-loglevel", "error",
			"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
			"-c:a", cfg.AudioCodec, "-f", "null", "-",
		) {
			fmt.Printf("✓ audio encoder %s works\n", cfg.AudioCodec)
		} else {
			fmt.Printf("✗ audio encoder %s test failed\n", cfg.AudioCodec)
			ok = false
		}

		if runSilent(cfg.FFmpegPath,
			"-hide_banner", "-nostdin", "-loglevel", "error",
			"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
			"-vf", "drawtext=text='check':fontcolor=white",
			"-f", "null", "-",
		) {
			fmt.Println("✓ drawtext filter works")
		} else {
			fmt.Println("✗ drawtext filter unavailable: overlays fall back to plain video")
		}

		if ok {
			fmt.Println("\nAll prerequisites met.")
		} else {
			fmt.Println("\nSome prerequisites are missing.")
		}
	},
}

// runSilent runs a command and reports whether it exited zero. Output is
// discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
