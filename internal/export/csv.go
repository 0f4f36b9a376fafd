// Package export writes journey maps as downloadable CSV files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Tofuswang/journey/internal/models"
)

const ContentType = "text/csv; charset=utf-8"

// Header is the column row that precedes the six stage rows.
var Header = []string{"步驟", "使用者行為", "描述", "系統/產品回應", "痛點或改善機會", "情緒指數", "情緒描述"}

// FileName is the download name for rec.
func FileName(rec models.JourneyRecord) string {
	return fmt.Sprintf("journey-%s.csv", rec.ID)
}

// MetadataLines returns the five header lines describing rec.
func MetadataLines(rec models.JourneyRecord) []string {
	return []string{
		"使用者類型：" + rec.Title,
		"作者：" + rec.DisplayAuthor(),
		"建立時間：" + rec.DisplayDate(),
		"情境：" + rec.Context,
		"目標：" + rec.Goal,
	}
}

// WriteCSV writes the metadata block, a blank line, the column header and
// one row per stage. Fields are quoted per RFC 4180 when needed.
func WriteCSV(w io.Writer, rec models.JourneyRecord) error {
	cw := csv.NewWriter(w)
	for _, line := range MetadataLines(rec) {
		if err := cw.Write([]string{line}); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{""}); err != nil {
		return err
	}
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, step := range rec.Steps() {
		row := []string{
			step.Definition.Label,
			step.Stage.StepName,
			step.Stage.Description,
			step.Stage.Response,
			step.Stage.PainPoint,
			strconv.Itoa(step.Stage.EmotionScore),
			step.Stage.Emotion,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Bytes renders rec to memory.
func Bytes(rec models.JourneyRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
