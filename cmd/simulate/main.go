// Simulation client: drives a scripted conversation through the turn API and
// prints the routing/escalation decisions per turn. Useful for eyeballing the
// decision pipeline against a running instance.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const baseURL = "http://localhost:3000/api/turn/v1"

type processTurnRequest struct {
	SessionId  string `json:"session_id,omitempty"`
	CustomerId string `json:"customer_id"`
	Message    string `json:"message"`
}

type processTurnResponse struct {
	Data struct {
		SessionId             string `json:"session_id"`
		Reply                 string `json:"reply"`
		Domain                string `json:"domain"`
		IsAmbiguous           bool   `json:"is_ambiguous"`
		ClarificationQuestion string `json:"clarification_question"`
		Escalated             bool   `json:"escalated"`
		Protocol              string `json:"protocol"`
		HandlerQueue          string `json:"handler_queue"`
		FrustrationLevel      int    `json:"frustration_level"`
		EscalationState       string `json:"escalation_state"`
		Candidates            []struct {
			Domain     string  `json:"domain"`
			Confidence float64 `json:"confidence"`
		} `json:"candidates"`
	} `json:"data"`
}

func main() {
	customerId := uuid.New().String()

	fmt.Println("=== Routing Engine Simulation Client ===")
	fmt.Printf("Customer: %s\n", customerId)

	script := []string{
		"oi",
		"meu cartão de crédito foi bloqueado e a fatura veio errada",
		"já tentei desbloquear pelo app e não funciona!!",
		"ISSO É UM ABSURDO, quero falar com um atendente agora",
	}

	sessionId := ""
	for _, text := range script {
		fmt.Printf("\n%s %s\n", color.New(color.FgHiBlue).Sprint("USER:"), text)

		start := time.Now()
		res, err := sendTurn(sessionId, customerId, text)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		sessionId = res.Data.SessionId

		fmt.Printf("%s (%v): %s\n", color.New(color.FgHiGreen).Sprint("BOT"), elapsed, res.Data.Reply)
		printDecision(res)

		time.Sleep(500 * time.Millisecond)
	}
}

func printDecision(res *processTurnResponse) {
	state := color.New(color.FgCyan).Sprint(res.Data.EscalationState)
	fmt.Printf("  state=%s frustration=%d", state, res.Data.FrustrationLevel)

	if res.Data.Domain != "" {
		fmt.Printf(" domain=%s", color.New(color.FgYellow).Sprint(res.Data.Domain))
	}
	if res.Data.IsAmbiguous {
		fmt.Printf(" %s", color.New(color.FgHiMagenta).Sprint("[ambiguous]"))
	}
	if res.Data.Escalated {
		fmt.Printf(" %s protocol=%s queue=%s",
			color.New(color.FgRed).Sprint("[ESCALATED]"),
			res.Data.Protocol,
			res.Data.HandlerQueue,
		)
	}
	fmt.Println()

	for _, c := range res.Data.Candidates {
		fmt.Printf("    %-16s %.2f\n", c.Domain, c.Confidence)
	}
}

func sendTurn(sessionId, customerId, text string) (*processTurnResponse, error) {
	reqBody, err := json.Marshal(processTurnRequest{
		SessionId:  sessionId,
		CustomerId: customerId,
		Message:    text,
	})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(baseURL, "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var res processTurnResponse
	if err := json.Unmarshal(body, &res); err != nil {
		log.Printf("raw body: %s", string(body))
		return nil, err
	}
	return &res, nil
}
