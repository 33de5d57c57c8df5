package registry

import (
	"bytes"
	"encoding/json"
	"math"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/KirkDiggler/charform/internal/domain/character"
	dnderr "github.com/KirkDiggler/charform/internal/errors"
)

const (
	// DataPart is the multipart field holding the JSON record
	DataPart = "data"
	// ImagePart is the multipart field holding the raw image bytes
	ImagePart = "image_file"
)

func encodeJSON(rec character.Record) ([]byte, string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, "", dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to marshal record")
	}
	return data, "application/json", nil
}

func encodeMultipart(rec character.Record, img *character.Image) ([]byte, string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, "", dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to marshal record")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField(DataPart, string(data)); err != nil {
		return nil, "", dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to write data part")
	}

	if img != nil && len(img.Data) > 0 {
		contentType := img.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     ImagePart,
			"filename": img.Filename,
		}))
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to create image part")
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to write image part")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to close multipart body")
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// decodeAck accepts an empty body or any valid JSON document
func decodeAck(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if !json.Valid(trimmed) {
		return dnderr.Decode(nil, "acknowledgement is not valid JSON")
	}
	return nil
}

// decodeGenerated unwraps the generation response. The endpoint answers with a
// JSON string whose content is the record, so the body is parsed twice.
// A body that is already a JSON object is accepted as well.
func decodeGenerated(body []byte) (character.Record, error) {
	payload := bytes.TrimSpace(body)
	if len(payload) == 0 {
		return character.Record{}, dnderr.Decode(nil, "generation response is empty")
	}

	if payload[0] == '"' {
		var inner string
		if err := json.Unmarshal(payload, &inner); err != nil {
			return character.Record{}, dnderr.Decode(err, "generation response is not a JSON string")
		}
		payload = bytes.TrimSpace([]byte(inner))
	}

	if len(payload) == 0 || payload[0] != '{' {
		return character.Record{}, dnderr.Decode(nil, "generation response does not contain a record object")
	}

	var wire wireRecord
	if err := json.Unmarshal(payload, &wire); err != nil {
		return character.Record{}, dnderr.Decode(err, "generation response record is malformed")
	}

	return wire.toRecord(), nil
}

// wireRecord mirrors character.Record but tolerates numbers sent as strings
type wireRecord struct {
	UserID      string  `json:"user_id"`
	CharacterID string  `json:"character_id"`
	Name        string  `json:"name"`
	Age         flexInt `json:"age"`
	Personality string  `json:"personality"`
	Appearance  string  `json:"appearance"`
	Setting     string  `json:"setting"`
	Story       string  `json:"story"`
	HP          flexInt `json:"hp"`
	MP          flexInt `json:"mp"`
	Vit         flexInt `json:"vit"`
	Dex         flexInt `json:"dex"`
	Agi         flexInt `json:"agi"`
	Inte        flexInt `json:"inte"`
	Luc         flexInt `json:"luc"`
	Fri         flexInt `json:"fri"`
	ImageName   string  `json:"image_name"`
}

func (w wireRecord) toRecord() character.Record {
	return character.Record{
		UserID:      w.UserID,
		CharacterID: w.CharacterID,
		Name:        w.Name,
		Age:         int(w.Age),
		Personality: w.Personality,
		Appearance:  w.Appearance,
		Setting:     w.Setting,
		Story:       w.Story,
		HP:          int(w.HP),
		MP:          int(w.MP),
		Vit:         int(w.Vit),
		Dex:         int(w.Dex),
		Agi:         int(w.Agi),
		Inte:        int(w.Inte),
		Luc:         int(w.Luc),
		Fri:         int(w.Fri),
		ImageName:   w.ImageName,
	}
}

// flexInt accepts integers sent as numbers or numeric strings.
// Fractions, NaN, infinities and values outside the int range are rejected.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*f = 0
		return nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		*f = flexInt(n)
		return nil
	}

	// Integral floats such as 120.0 or 1e2
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) ||
		n < float64(math.MinInt) || n >= float64(math.MaxInt) {
		return dnderr.InvalidArgumentf("'%s' is not an integer", s)
	}
	*f = flexInt(n)
	return nil
}
