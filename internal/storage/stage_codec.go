package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Tofuswang/journey/internal/models"
)

// storedStage reads stage JSON written by this service as well as rows
// written by the older browser client, which stored the response under
// "scammer_action" and scores as strings.
type storedStage struct {
	models.Stage
	EmotionScore   flexibleInt `json:"emotion_score"`
	LegacyResponse string      `json:"scammer_action"`
}

type flexibleInt int

func (n *flexibleInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("emotion_score %q: %w", s, err)
		}
		*n = flexibleInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = flexibleInt(v)
	return nil
}

func encodeStages(rec models.JourneyRecord) ([]any, error) {
	out := make([]any, 0, models.StageCount)
	for i, st := range rec.Stages {
		b, err := json.Marshal(st)
		if err != nil {
			return nil, fmt.Errorf("encode stage %d: %w", i+1, err)
		}
		out = append(out, string(b))
	}
	return out, nil
}

func decodeStages(raw [models.StageCount]string, rec *models.JourneyRecord) error {
	for i, s := range raw {
		var ss storedStage
		if err := json.Unmarshal([]byte(s), &ss); err != nil {
			return fmt.Errorf("decode stage %d of %s: %w", i+1, rec.ID, err)
		}
		st := ss.Stage
		st.EmotionScore = int(ss.EmotionScore)
		if st.Response == "" {
			st.Response = ss.LegacyResponse
		}
		rec.Stages[i] = st
	}
	return nil
}
