package registry

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/KirkDiggler/charform/internal/domain/character"
	dnderr "github.com/KirkDiggler/charform/internal/errors"
	"github.com/KirkDiggler/charform/internal/uuid"
)

// RequestIDHeader carries the per-call identifier to the registry
const RequestIDHeader = "X-Request-ID"

// Encoding selects the request body layout
type Encoding string

const (
	// EncodingMultipart sends the record as the "data" part and the image as "image_file"
	EncodingMultipart Encoding = "multipart"
	// EncodingJSON sends the bare record; images are not transmitted
	EncodingJSON Encoding = "json"
)

type client struct {
	httpClient    *http.Client
	registerURL   string
	assistURL     string
	encoding      Encoding
	uuidGenerator uuid.Generator
}

// Config holds the registry client dependencies
type Config struct {
	HttpClient    *http.Client
	RegisterURL   string
	AssistURL     string
	Encoding      Encoding       // Optional, defaults to multipart
	UUIDGenerator uuid.Generator // Optional, defaults to random UUIDs
}

// New creates an HTTP registry client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("registry config is required")
	}
	if cfg.RegisterURL == "" {
		return nil, dnderr.InvalidArgument("register URL is required")
	}
	if cfg.AssistURL == "" {
		return nil, dnderr.InvalidArgument("assist URL is required")
	}

	c := &client{
		httpClient:    cfg.HttpClient,
		registerURL:   cfg.RegisterURL,
		assistURL:     cfg.AssistURL,
		encoding:      cfg.Encoding,
		uuidGenerator: cfg.UUIDGenerator,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.encoding == "" {
		c.encoding = EncodingMultipart
	}
	if c.encoding != EncodingMultipart && c.encoding != EncodingJSON {
		return nil, dnderr.InvalidArgumentf("unknown encoding '%s'", c.encoding)
	}
	if c.uuidGenerator == nil {
		c.uuidGenerator = uuid.NewRandomGenerator()
	}

	return c, nil
}

func (c *client) Register(ctx context.Context, rec character.Record, img *character.Image) (*Ack, error) {
	status, body, requestID, err := c.post(ctx, c.registerURL, rec, img)
	if err != nil {
		return nil, err
	}

	if err := decodeAck(body); err != nil {
		return nil, err
	}

	log.Printf("registry: registered character %s (request %s, status %d)", rec.CharacterID, requestID, status)
	return &Ack{
		StatusCode: status,
		RequestID:  requestID,
		Body:       body,
	}, nil
}

func (c *client) AssistGenerate(ctx context.Context, rec character.Record, img *character.Image) (character.Record, error) {
	_, body, requestID, err := c.post(ctx, c.assistURL, rec, img)
	if err != nil {
		return rec, err
	}

	generated, err := decodeGenerated(body)
	if err != nil {
		log.Printf("registry: assist response for request %s could not be decoded: %v", requestID, err)
		return rec, err
	}

	return character.Overlay(rec, generated), nil
}

// post issues exactly one request and returns the body of a 2xx response
func (c *client) post(ctx context.Context, url string, rec character.Record, img *character.Image) (int, []byte, string, error) {
	var (
		payload     []byte
		contentType string
		err         error
	)
	switch c.encoding {
	case EncodingJSON:
		payload, contentType, err = encodeJSON(rec)
	default:
		payload, contentType, err = encodeMultipart(rec, img)
	}
	if err != nil {
		return 0, nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, "", dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "failed to build request").
			WithMeta("url", url)
	}

	requestID := c.uuidGenerator.New()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	log.Printf("registry: POST %s (request %s, %d bytes)", url, requestID, len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("registry: request %s failed: %v", requestID, err)
		return 0, nil, requestID, dnderr.Unavailable(err, "network error").
			WithMeta("url", url).
			WithMeta("request_id", requestID)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Printf("registry: request %s rejected with status %d", requestID, resp.StatusCode)
		return resp.StatusCode, nil, requestID, dnderr.Rejected(resp.StatusCode, "request rejected with status "+strconv.Itoa(resp.StatusCode)).
			WithMeta("url", url).
			WithMeta("request_id", requestID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, requestID, dnderr.Unavailable(err, "failed to read response").
			WithMeta("url", url).
			WithMeta("request_id", requestID)
	}

	return resp.StatusCode, body, requestID, nil
}
