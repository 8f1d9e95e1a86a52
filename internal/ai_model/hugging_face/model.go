package hugging_face

import (
	"calorieBot/internal/ai_model"
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Model string

var (
	Qwen_2dot5_VL_7B  Model = "Qwen/Qwen2.5-VL-7B-Instruct:hyperbolic"
	Qwen_2dot5_VL_32B Model = "Qwen/Qwen2.5-VL-32B-Instruct:hyperbolic"
)

func (m Model) GetModelName() string {
	if m == "" {
		return string(Qwen_2dot5_VL_7B)
	}
	return string(m)
}

// VisionModel talks to the Hugging Face inference router through its
// OpenAI-compatible chat completions endpoint.
type VisionModel struct {
	client openai.Client
	Model  Model
}

func NewVisionModel(token, baseURL string, model Model) *VisionModel {
	return &VisionModel{
		client: openai.NewClient(
			option.WithAPIKey(token),
			option.WithBaseURL(strings.TrimSuffix(baseURL, "/")+"/"),
			option.WithMaxRetries(0),
		),
		Model: model,
	}
}

func (h *VisionModel) Analyze(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		log.Println("[VisionModel.Analyze] empty image")
		return "", ai_model.NewError(ai_model.Unknown, errors.New("empty image"))
	}

	log.Printf("[VisionModel.Analyze model: %s] image bytes=%d", h.Model.GetModelName(), len(image))

	params := openai.ChatCompletionNewParams{
		Model: h.Model.GetModelName(),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(foodPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL(image),
				}),
			}),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	}

	start := time.Now()
	res, err := h.client.Chat.Completions.New(ctx, params)
	if err != nil {
		classified := classify(err)
		log.Printf("[VisionModel.Analyze] request failed kind=%s err=%v", classified.Kind, err)
		return "", classified
	}

	if len(res.Choices) == 0 {
		log.Println("[VisionModel.Analyze] no choices in response")
		return "", ai_model.NewError(ai_model.Unknown, errors.New("model returned no choices"))
	}

	reply := strings.TrimSpace(res.Choices[0].Message.Content)
	log.Printf("[VisionModel.Analyze] done in %.2fs, total tokens=%d, reply chars=%d",
		time.Since(start).Seconds(), res.Usage.TotalTokens, len([]rune(reply)))

	return reply, nil
}

// classify maps a failed call to an error kind. HTTP status wins; the
// message is checked for providers that report throttling in the body.
func classify(err error) *ai_model.Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusPaymentRequired:
			return ai_model.NewError(ai_model.RateLimited, err)
		case http.StatusBadRequest, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return ai_model.NewError(ai_model.ServiceUnavailable, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "quota"):
		return ai_model.NewError(ai_model.RateLimited, err)
	case strings.Contains(msg, "unavailable"), strings.Contains(msg, "bad request"):
		return ai_model.NewError(ai_model.ServiceUnavailable, err)
	}
	return ai_model.NewError(ai_model.Unknown, err)
}

func dataURL(image []byte) string {
	mime := http.DetectContentType(image)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
}
