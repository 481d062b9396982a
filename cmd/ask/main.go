package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

type questionRequest struct {
	QuestionBody    string `json:"question_body"`
	ChunkNum        int    `json:"chunk_num,omitempty"`
	TerritoryNameId string `json:"territory_name_id,omitempty"`
	TerritoryType   string `json:"territory_type,omitempty"`
	// raw JSON, e.g. [30.31, 59.94]
	UserSelectionZone json.RawMessage `json:"user_selection_zone,omitempty"`
}

type envelope struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		LlmRes      string   `json:"llm_res"`
		Pipeline    string   `json:"pipeline"`
		Functions   []string `json:"functions"`
		ContextList []string `json:"context_list"`
		Logs        []string `json:"logs"`
	} `json:"data"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8000/api", "service base url")
	territory := flag.String("territory", "", "territory name or id")
	territoryType := flag.String("type", "", "city, district, municipality or block")
	zone := flag.String("zone", "", "selection zone coordinates as JSON")
	chunks := flag.Int("chunks", 0, "strategy passages to retrieve")
	timeout := flag.Duration("timeout", 3*time.Minute, "request timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		color.Red("usage: ask [flags] <question>")
		os.Exit(2)
	}

	req := questionRequest{
		QuestionBody:    flag.Arg(0),
		ChunkNum:        *chunks,
		TerritoryNameId: *territory,
		TerritoryType:   *territoryType,
	}
	if *zone != "" {
		req.UserSelectionZone = json.RawMessage(*zone)
	}

	color.Cyan("Asking: %s", req.QuestionBody)
	status, requestID, res, err := send(*baseURL+"/question", req, *timeout)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if !res.Success {
		color.Red("Status %d: %s (request %s)", status, res.Message, requestID)
		os.Exit(1)
	}

	color.Yellow("\nPipeline: %s", res.Data.Pipeline)
	if len(res.Data.Functions) > 0 {
		color.Yellow("Functions: %v", res.Data.Functions)
	}
	for i, c := range res.Data.ContextList {
		color.White("  [%d] %s", i, c)
	}

	color.Green("\n%s\n", res.Data.LlmRes)

	color.Cyan("Decision log (request %s):", requestID)
	for _, line := range res.Data.Logs {
		fmt.Println("  " + line)
	}
}

func send(url string, body questionRequest, timeout time.Duration) (int, string, *envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, "", nil, err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", nil, err
	}

	var res envelope
	if err := json.Unmarshal(raw, &res); err != nil {
		return resp.StatusCode, "", nil, fmt.Errorf("unexpected response %q: %w", raw, err)
	}
	return resp.StatusCode, resp.Header.Get("X-Request-ID"), &res, nil
}
