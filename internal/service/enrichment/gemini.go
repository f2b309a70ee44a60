// internal/service/enrichment/gemini.go
package enrichment

import (
	"context"
	"fmt"
	"strings"

	"llamacrm-service/internal/domain/lead"
	xerrors "llamacrm-service/internal/pkg/errors"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Service wraps the Gemini API for lead enrichment. Both operations
// are request/response against the lead passed in; neither touches the
// lead collection.
type Service struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewService(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Service{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// GenerateStrategy produces a closing-strategy brief for one lead.
func (s *Service) GenerateStrategy(ctx context.Context, l lead.Lead) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(strategyPrompt(l), genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		s.logger.Error("strategy generation failed",
			zap.String("lead_id", l.ID),
			zap.Error(err),
		)
		return "", xerrors.NewAIError("strategy", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", xerrors.NewAIError("strategy", fmt.Errorf("empty response"))
	}

	return text, nil
}

// AnalyzeScreenshot reads a chat screenshot and summarizes the
// prospect's temperature and objections in the context of the lead.
func (s *Service) AnalyzeScreenshot(ctx context.Context, image []byte, mimeType string, l lead.Lead) (string, error) {
	if len(image) == 0 {
		return "", xerrors.NewAIError("chat_analysis", fmt.Errorf("empty image"))
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(screenshotPrompt(l)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		s.logger.Error("screenshot analysis failed",
			zap.String("lead_id", l.ID),
			zap.Error(err),
		)
		return "", xerrors.NewAIError("chat_analysis", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", xerrors.NewAIError("chat_analysis", fmt.Errorf("empty response"))
	}

	return text, nil
}

func strategyPrompt(l lead.Lead) string {
	var b strings.Builder
	b.WriteString("Eres un estratega de ventas high-ticket. Genera una estrategia de cierre breve y accionable (secciones con viñetas) para este lead:\n\n")
	writeLeadContext(&b, l)
	b.WriteString("\nIncluye: ángulo de apertura, manejo de objeciones probables y próximo paso concreto.")
	return b.String()
}

func screenshotPrompt(l lead.Lead) string {
	var b strings.Builder
	b.WriteString("Analiza esta captura de una conversación de WhatsApp con un prospecto. Resume temperatura del lead, objeciones detectadas y respuesta sugerida.\n\nContexto del lead:\n")
	writeLeadContext(&b, l)
	return b.String()
}

func writeLeadContext(b *strings.Builder, l lead.Lead) {
	fmt.Fprintf(b, "Nombre: %s\n", l.Name)
	fmt.Fprintf(b, "Origen: %s\n", l.Origin)
	fmt.Fprintf(b, "Calificación: %s\n", l.Qualification)
	if l.Country != "" {
		fmt.Fprintf(b, "País: %s\n", l.Country)
	}
	if l.MainProblem != "" {
		fmt.Fprintf(b, "Problema principal: %s\n", l.MainProblem)
	}
	if l.MonthlyRevenue != "" {
		fmt.Fprintf(b, "Facturación mensual: %s\n", l.MonthlyRevenue)
	}
	if l.AdSpend != "" {
		fmt.Fprintf(b, "Inversión en ads: %s\n", l.AdSpend)
	}
	if l.DecisionMaker != "" {
		fmt.Fprintf(b, "Decisor: %s\n", l.DecisionMaker)
	}
	if l.Notes != "" {
		fmt.Fprintf(b, "Notas: %s\n", l.Notes)
	}
}
