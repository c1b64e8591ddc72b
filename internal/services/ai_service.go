package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	apperrors "github.com/steelo13/WellnessWingman/internal/errors"
	"github.com/steelo13/WellnessWingman/internal/tracking"
	"google.golang.org/api/option"
)

const (
	geminiModel     = "gemini-1.5-flash"
	openaiTextModel = openai.GPT4TurboPreview

	coachSystemInstruction = `You are Wellness Wingman, an elite nutrition and fitness coach.
Your goal is to provide evidence-based, supportive, and highly actionable advice.
Help users navigate their fitness journey, explain macro distributions, suggest workout tweaks, and offer motivational boosts.
Keep your responses concise (under 200 words), formatted with markdown for clarity, and always maintain a professional yet friendly coach persona.`
)

type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
}

// FoodRecognition is the structured payload the model returns for a meal,
// whether it came from a photo, a barcode or a parsed utterance.
type FoodRecognition struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Amount   string  `json:"amount"`
	Category string  `json:"category"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
}

// ParsedLog is the result of parsing a free-text logging utterance. Type
// is either "food" or "exercise"; the remaining fields are filled
// according to the type.
type ParsedLog struct {
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Calories       float64 `json:"calories"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	Protein        float64 `json:"protein"`
	Fiber          float64 `json:"fiber"`
	Amount         string  `json:"amount"`
	Category       string  `json:"category"`
	Duration       int     `json:"duration"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

// RecipeSuggestion mirrors the recipe schema the coach produces.
type RecipeSuggestion struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Calories     float64  `json:"calories"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
	Protein      float64  `json:"protein"`
	Fiber        float64  `json:"fiber"`
	PrepTime     string   `json:"prepTime"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// CoachMessage is one turn of the coaching conversation. Role is "user"
// or "assistant".
type CoachMessage struct {
	Role    string
	Content string
}

func NewAIService(geminiAPIKey, openaiAPIKey string) *AIService {
	geminiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(geminiAPIKey))
	if err != nil {
		panic(fmt.Sprintf("Failed to create Gemini client: %v", err))
	}

	openaiClient := openai.NewClient(openaiAPIKey)

	return &AIService{
		geminiClient: geminiClient,
		openaiClient: openaiClient,
	}
}

const foodSchemaPrompt = `CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object
- Do not include any markdown formatting, bullet points, or dashes
- Do not include any explanatory text before or after the JSON
- The JSON must have these exact fields:
  {
    "name": "food name",
    "calories": 123,
    "amount": "1 serving",
    "category": "Breakfast|Lunch|Dinner|Snacks",
    "carbs": 12.3,
    "fat": 4.5,
    "protein": 6.7,
    "fiber": 1.2
  }`

// AnalyzeFoodImage identifies a meal from a photo and estimates its
// nutritional profile.
func (s *AIService) AnalyzeFoodImage(ctx context.Context, imageURL string, useOpenAI bool) (*FoodRecognition, error) {
	prompt := `You are a nutrition analysis expert. Analyze the meal in the image.

TASK:
1. Identify the food and give it a short descriptive name
2. Estimate calories, carbohydrates, fat, protein and fiber (in grams) based on standard nutritional databases
3. Estimate the serving amount as free text (e.g. "1 cup", "250g")
4. Pick the most likely meal category: Breakfast, Lunch, Dinner or Snacks

REQUIREMENTS:
- Consider portion sizes and the plate/bowl size if visible
- Include likely hidden ingredients (oil, sugar, sauces)
- If the image contains nutritional information or packaging, prioritize that data

` + foodSchemaPrompt

	if useOpenAI {
		return s.foodFromOpenAIVision(ctx, imageURL, prompt)
	}
	return s.foodFromGeminiVision(ctx, imageURL, prompt)
}

// LookupBarcode resolves a product barcode into per-serving nutrition.
func (s *AIService) LookupBarcode(ctx context.Context, barcode string, useOpenAI bool) (*FoodRecognition, error) {
	prompt := fmt.Sprintf(`Identify the food product with barcode "%s" and provide its nutritional data (calories, carbs, fat, protein, fiber) per serving.

%s`, barcode, foodSchemaPrompt)

	raw, err := s.generateText(ctx, prompt, useOpenAI)
	if err != nil {
		return nil, err
	}
	food, err := parseFoodRecognition(raw)
	if err != nil {
		return nil, fmt.Errorf("could not find product details for barcode %s: %w", barcode, err)
	}
	return food, nil
}

// ParseLoggedItem turns a natural-language utterance (typically a voice
// transcript) into a structured food or exercise log.
func (s *AIService) ParseLoggedItem(ctx context.Context, utterance string, useOpenAI bool) (*ParsedLog, error) {
	prompt := fmt.Sprintf(`Parse this natural language input from a user: "%s".
Determine if the user is logging a food/meal or an exercise activity.

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object with no surrounding text
- If food: { "type": "food", "name": string, "calories": number, "carbs": number, "fat": number, "protein": number, "fiber": number, "amount": string, "category": "Breakfast"|"Lunch"|"Dinner"|"Snacks" }
- If exercise: { "type": "exercise", "name": string, "duration": number (minutes), "caloriesBurned": number }`, utterance)

	raw, err := s.generateText(ctx, prompt, useOpenAI)
	if err != nil {
		return nil, err
	}
	return parseLoggedPayload(raw)
}

// parseLoggedPayload decodes a ParsedLog from raw model output, coercing
// food fields onto values the diary understands.
func parseLoggedPayload(raw string) (*ParsedLog, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}
	var parsed ParsedLog
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Type != "food" && parsed.Type != "exercise" {
		return nil, fmt.Errorf("unexpected log type %q", parsed.Type)
	}
	if parsed.Type == "food" {
		parsed.Category = normalizeCategory(parsed.Category)
		if parsed.Amount == "" {
			parsed.Amount = "1 serving"
		}
	}
	return &parsed, nil
}

// CoachReply continues the coaching conversation. The user's custom
// instructions, if any, are appended to the coach persona.
func (s *AIService) CoachReply(ctx context.Context, history []CoachMessage, customInstructions string, useOpenAI bool) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("empty conversation history")
	}

	instruction := coachSystemInstruction
	if customInstructions != "" {
		instruction += "\n\nSpecific User Preferences/Goals: " + customInstructions
	}

	if useOpenAI {
		messages := []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
		}
		for _, m := range history {
			role := openai.ChatMessageRoleUser
			if m.Role == "assistant" {
				role = openai.ChatMessageRoleAssistant
			}
			messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
		}

		resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    openaiTextModel,
			Messages: messages,
		})
		if err != nil {
			return "", apperrors.NewExternalAPIError(err, "OpenAI")
		}
		return resp.Choices[0].Message.Content, nil
	}

	model := s.geminiClient.GenerativeModel(geminiModel)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instruction)}}

	cs := model.StartChat()
	for _, m := range history[:len(history)-1] {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(history[len(history)-1].Content))
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "Gemini")
	}
	reply, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type")
	}
	return string(reply), nil
}

// SuggestRecipes asks the model for recipes that fit the remaining daily
// macro budget. An optional query narrows the search.
func (s *AIService) SuggestRecipes(ctx context.Context, remaining tracking.Remaining, query string, useOpenAI bool) ([]RecipeSuggestion, error) {
	prompt := fmt.Sprintf("Based on these remaining daily macros: Calories: %.0f, Protein: %.0fg, Carbs: %.0fg, Fat: %.0fg. ",
		remaining.Calories, remaining.Protein, remaining.Carbs, remaining.Fat)
	if query != "" {
		prompt += fmt.Sprintf("Specifically search for recipes matching: %q. ", query)
	} else {
		prompt += "Suggest 3 diverse healthy recipes that fit these macros. "
	}
	prompt += `Return ONLY a JSON array with no surrounding text, each element shaped as:
{
  "title": string,
  "description": string,
  "calories": number,
  "carbs": number,
  "fat": number,
  "protein": number,
  "fiber": number,
  "prepTime": string,
  "ingredients": [string],
  "instructions": [string]
}`

	raw, err := s.generateText(ctx, prompt, useOpenAI)
	if err != nil {
		return nil, err
	}

	jsonStr := extractJSONArray(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON array found in response")
	}
	var recipes []RecipeSuggestion
	if err := json.Unmarshal([]byte(jsonStr), &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}
	return recipes, nil
}

// generateText runs a plain text prompt through the selected provider.
func (s *AIService) generateText(ctx context.Context, prompt string, useOpenAI bool) (string, error) {
	if useOpenAI {
		resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: openaiTextModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return "", apperrors.NewExternalAPIError(err, "OpenAI")
		}
		return resp.Choices[0].Message.Content, nil
	}

	model := s.geminiClient.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type")
	}
	return string(text), nil
}

func (s *AIService) foodFromGeminiVision(ctx context.Context, imageURL, prompt string) (*FoodRecognition, error) {
	imageData, err := downloadImage(imageURL)
	if err != nil {
		return nil, err
	}

	model := s.geminiClient.GenerativeModel(geminiModel)
	img := genai.ImageData("image/jpeg", imageData)
	resp, err := model.GenerateContent(ctx, img, genai.Text(prompt))
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type")
	}
	return parseFoodRecognition(string(text))
}

func (s *AIService) foodFromOpenAIVision(ctx context.Context, imageURL, prompt string) (*FoodRecognition, error) {
	resp, err := s.openaiClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4VisionPreview,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: prompt,
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL: imageURL,
							},
						},
					},
				},
			},
		},
	)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "OpenAI")
	}
	return parseFoodRecognition(resp.Choices[0].Message.Content)
}

func downloadImage(imageURL string) ([]byte, error) {
	resp, err := http.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return imageData, nil
}

// parseFoodRecognition extracts and decodes a FoodRecognition payload
// from raw model output, defaulting the fields models tend to omit.
func parseFoodRecognition(raw string) (*FoodRecognition, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}
	var food FoodRecognition
	if err := json.Unmarshal([]byte(jsonStr), &food); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if food.Name == "" {
		food.Name = "Analyzed Food"
	}
	if food.Amount == "" {
		food.Amount = "1 serving"
	}
	food.Category = normalizeCategory(food.Category)
	return &food, nil
}

// normalizeCategory coerces model output onto the four meal categories.
func normalizeCategory(category string) string {
	switch category {
	case "Breakfast", "Lunch", "Dinner", "Snacks":
		return category
	default:
		return "Lunch"
	}
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// extractJSONArray is the array counterpart of extractJSON.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "]")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
