package types

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/mitchellh/mapstructure"
)

type Verification struct {
	Code                    string     `mapstructure:"code" json:"code,omitempty"`
	ChannelID               string     `mapstructure:"channel_id" json:"channel_id,omitempty"`
	VideoID                 string     `mapstructure:"video_id" json:"video_id,omitempty"`
	RequiredWatchPercentage float64    `mapstructure:"required_watch_percentage" json:"required_watch_percentage,omitempty"`
	MinimumDuration         int        `mapstructure:"minimum_duration" json:"minimum_duration,omitempty"`
	CompletedAt             *time.Time `mapstructure:"completed_at" json:"completed_at,omitempty"`
}

func DecodeVerification(task *Task) (Verification, error) {
	v := Verification{}
	if len(task.VerificationData) == 0 {
		return v, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &v,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return v, errors.Wrap(err, "mapstructure.NewDecoder failed: ")
	}
	if err := decoder.Decode(task.VerificationData); err != nil {
		return v, errors.Wrap(err, "decoder.Decode failed: ")
	}
	return v, nil
}

// ShowsCode: комментарий с кодом нужен только для youtube_comment
func (v Verification) ShowsCode(t TaskType) bool {
	return t == TaskYoutubeComment && v.Code != ""
}
