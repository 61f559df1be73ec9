package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type VideoInfo struct {
	DurationSeconds float64 `json:"duration"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Size            int64   `json:"size"`
}

// ProbeVideo reads container metadata from a local video file.
func ProbeVideo(videoPath string) (*VideoInfo, error) {
	fileInfo, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("video file not found: %w", err)
	}

	jsonOutput, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Size     string `json:"size"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	var width, height int
	for _, stream := range result.Streams {
		if stream.CodecType == "video" {
			width = stream.Width
			height = stream.Height
			break
		}
	}

	duration, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		duration = 0
	}

	size, err := strconv.ParseInt(result.Format.Size, 10, 64)
	if err != nil {
		size = fileInfo.Size()
	}

	return &VideoInfo{
		DurationSeconds: duration,
		Width:           width,
		Height:          height,
		Size:            size,
	}, nil
}

// DurationMinutes rounds the probed duration up to whole minutes.
func (v *VideoInfo) DurationMinutes() int {
	if v.DurationSeconds <= 0 {
		return 0
	}
	minutes := int(v.DurationSeconds) / 60
	if int(v.DurationSeconds)%60 != 0 {
		minutes++
	}
	return minutes
}
