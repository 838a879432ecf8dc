// Package main drives a running server through the report lifecycle: create a
// definition, store a generated payload, then render, export and draw it.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "verify_render",
		Short: "Run a report through create, generate, render, export and delete",
		Run:   run,
	}

	rootCmd.Flags().StringVar(&baseURL, "url", "http://127.0.0.1:8080", "Server base URL")
	rootCmd.Flags().StringVar(&token, "token", os.Getenv("REPORTS_TOKEN"), "Bearer token; empty when the server runs with SKIP_AUTH")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	c := &client{base: baseURL, token: token, http: &http.Client{Timeout: 10 * time.Second}}

	fmt.Println("Starting render verification...")

	// 1. Create report definition
	var created struct {
		ID string `json:"id"`
	}
	err := c.do("POST", "/api/reports", map[string]any{
		"name": "Verification Report",
		"type": "patient",
		"charts": []map[string]any{
			{"type": "pie", "title": "Gender", "dataField": "gender"},
			{"type": "summary", "title": "Totals", "dataField": "totals"},
		},
	}, http.StatusCreated, &created)
	check("create report", err)
	fmt.Printf("Created report: %s\n", created.ID)

	// 2. Store a payload in raw generator shape
	payload := map[string]any{
		"_id":         map[string]any{"$oid": "65a1b2c3d4e5f60718293a4b"},
		"generatedAt": map[string]any{"$date": time.Now().UTC().Format(time.RFC3339)},
		"data": []map[string]any{
			{"chartId": "gender", "data": []map[string]any{{"label": "A", "value": 4}, {"label": "B", "value": 6}}},
			{"chartId": "totals", "type": "summary", "total": 10, "active": 8},
		},
	}
	var generated struct {
		ID string `json:"id"`
	}
	check("store payload", c.do("POST", "/api/reports/"+created.ID+"/generated", payload, http.StatusCreated, &generated))
	fmt.Printf("Stored generated payload: %s\n", generated.ID)

	// 3. Render and check the pie split
	var rendered struct {
		Charts []struct {
			Kind string `json:"kind"`
			Pie  *struct {
				Segments []struct {
					Percentage float64 `json:"percentage"`
				} `json:"segments"`
			} `json:"pie"`
		} `json:"charts"`
	}
	check("render", c.do("GET", "/api/reports/"+created.ID+"/render", nil, http.StatusOK, &rendered))
	if len(rendered.Charts) != 2 || rendered.Charts[0].Pie == nil || rendered.Charts[0].Pie.Segments[0].Percentage != 40 {
		fail("render", fmt.Errorf("unexpected rendering: %+v", rendered))
	}
	fmt.Println("Rendered pie: 40% / 60%")

	// 4. Export and image
	check("export", c.do("GET", "/api/generated/"+generated.ID+"/export", nil, http.StatusOK, nil))
	check("image", c.do("GET", "/api/generated/"+generated.ID+"/charts/0/image", nil, http.StatusOK, nil))
	fmt.Println("Export and image OK")

	// 5. Clean up
	check("delete report", c.do("DELETE", "/api/reports/"+created.ID, nil, http.StatusNoContent, nil))
	fmt.Println("Verification passed.")
}

type client struct {
	base  string
	token string
	http  *http.Client
}

func (c *client) do(method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

func check(step string, err error) {
	if err != nil {
		fail(step, err)
	}
}

func fail(step string, err error) {
	fmt.Printf("FAILED at %s: %v\n", step, err)
	os.Exit(1)
}
