package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"smartbite/models"
)

// ChatController proxies the nutrition-advisor conversation to the Gemini
// generateContent endpoint. The model is a black box: text in, text out.
type ChatController struct {
	client *http.Client
}

func NewChatController() *ChatController {
	return &ChatController{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat godoc
// @Summary AI nutrition chat
// @Description Forward the conversation to the LLM and return a single assistant reply
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Conversation"
// @Success 200 {object} models.ChatMessage
// @Router /chat [post]
func (ctrl *ChatController) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Messages are required"})
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(500, gin.H{"success": false, "message": "API key is missing"})
		return
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}

	payload := geminiRequest{}
	payload.GenerationConfig.MaxOutputTokens = 1000
	for _, m := range req.Messages {
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		payload.Contents = append(payload.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}

	body, _ := json.Marshal(payload)
	url := fmt.Sprintf(geminiEndpoint, model, apiKey)

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to build upstream request"})
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := ctrl.client.Do(httpReq)
	if err != nil {
		c.JSON(502, gin.H{"success": false, "message": "LLM request failed", "error": err.Error()})
		return
	}
	defer resp.Body.Close()

	var gemini geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gemini); err != nil {
		c.JSON(502, gin.H{"success": false, "message": "Failed to decode LLM response", "error": err.Error()})
		return
	}

	if gemini.Error != nil {
		c.JSON(502, gin.H{"success": false, "message": "LLM error", "error": gemini.Error.Message})
		return
	}
	if len(gemini.Candidates) == 0 || len(gemini.Candidates[0].Content.Parts) == 0 {
		c.JSON(502, gin.H{"success": false, "message": "LLM returned no content"})
		return
	}

	c.JSON(200, models.ChatMessage{
		Role:    "assistant",
		Content: gemini.Candidates[0].Content.Parts[0].Text,
	})
}
