package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"meetingreel/config"
	"meetingreel/core/media"
	"meetingreel/core/reel"
	"meetingreel/model"
)

var (
	generateRecording    string
	generateHighlights   string
	generateMeetingID    string
	generateMeetingTitle string
	generateParticipants int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one highlight reel",
	Long: `Generate a highlight reel from a recording and a highlights JSON file.
The highlights file contains either a JSON array of highlights or a full
request object with meeting metadata and sourcePath.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		req, err := loadRequest(generateHighlights)
		if err != nil {
			return err
		}

		// Flags override whatever the file carried.
		if generateRecording != "" {
			req.SourcePath = generateRecording
		}
		if generateMeetingID != "" {
			req.Meeting.ID = generateMeetingID
		}
		if generateMeetingTitle != "" {
			req.Meeting.Title = generateMeetingTitle
		}
		if generateParticipants > 0 {
			req.Meeting.ParticipantCount = generateParticipants
		}
		if req.Meeting.ID == "" {
			return fmt.Errorf("a meeting id is required (--meeting-id or the request file)")
		}
		if req.Meeting.StartedAt.IsZero() {
			req.Meeting.StartedAt = time.Now()
		}

		pipeline := reel.New(media.NewFFmpeg(cfg.FFmpegPath), cfg)
		result, err := pipeline.GenerateHighlightReel(context.Background(), *req)
		if err != nil {
			return err
		}

		if result.Fallback {
			fmt.Printf("Fallback artifact (%s, %s): %s\n", result.Reason, result.Tier, result.OutputPath)
		} else {
			fmt.Printf("Highlight reel: %s\n", result.OutputPath)
		}
		return nil
	},
}

// loadRequest reads the highlights file, accepting either a bare highlight
// array or a full ReelRequest object.
func loadRequest(path string) (*model.ReelRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading highlights file: %w", err)
	}

	var req model.ReelRequest
	if err := json.Unmarshal(data, &req); err == nil && (len(req.Highlights) > 0 || req.Meeting.ID != "") {
		return &req, nil
	}

	var highlights []model.Highlight
	if err := json.Unmarshal(data, &highlights); err != nil {
		return nil, fmt.Errorf("parsing highlights file %s: %w", path, err)
	}
	req = model.ReelRequest{Highlights: highlights}
	return &req, nil
}

func init() {
	generateCmd.Flags().StringVarP(&generateRecording, "recording", "r", "", "path to the source recording")
	generateCmd.Flags().StringVarP(&generateHighlights, "highlights", "f", "", "path to the highlights JSON file")
	generateCmd.Flags().StringVar(&generateMeetingID, "meeting-id", "", "meeting identifier")
	generateCmd.Flags().StringVar(&generateMeetingTitle, "meeting-title", "", "meeting title shown in the intro bumper")
	generateCmd.Flags().IntVar(&generateParticipants, "participants", 0, "participant count shown in bumpers")
	generateCmd.MarkFlagRequired("highlights")

	rootCmd.AddCommand(generateCmd)
}
