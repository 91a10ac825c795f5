// TODO
// save conversation per HR user instead of one shared history

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"atiempo.app/atiempo/ai/atiempo"
	"atiempo.app/atiempo/core"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/server"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

var history = []*ai.Message{}

var model = googlegenai.GoogleAIModelRef("gemini-2.5-flash", &genai.GenerateContentConfig{
	MaxOutputTokens: 500,
	StopSequences:   []string{"<end>", "<fin>"},
	Temperature:     genai.Ptr[float32](0.0), // large (1) -> creative
	TopP:            genai.Ptr[float32](0.4), // large (1) -> diversity
	TopK:            genai.Ptr[float32](5),   // 1 -> determistic (the first one)
	ThinkingConfig: &genai.ThinkingConfig{
		ThinkingBudget: genai.Ptr[int32](0),
	},
})

type SQLInput struct {
	Query string `json:"query"`
}

func main() {
	ctx := context.Background()

	// The Google AI plugin reads GEMINI_API_KEY or GOOGLE_API_KEY from the
	// environment when Config is nil.
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}, &atiempo.AtiempoPlugin{}))

	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/atiempo?parseTime=true"
	}
	schema := os.Getenv("ATIEMPO_SCHEMA")
	if schema == "" {
		schema = "atiempo"
	}

	sqlExecution := genkit.DefineTool(g, "sql", "Execute a read-only SQL query against the attendance database",
		func(ctx *ai.ToolContext, input SQLInput) (string, error) {
			dm, err := core.New(dsn, 10)
			if err != nil {
				return "", err
			}
			defer dm.Close()
			result := ""
			fmt.Println(input.Query)
			if err := dm.Exec(context.Background(), schema, func(db *gorm.DB) error {
				result, err = atiempo.ExecuteSQL(db, input.Query)
				return err
			}); err != nil {
				return "", err
			}

			return result, nil
		},
	)

	bot := genkit.DefineStreamingFlow(g, "attendance", func(ctx context.Context, input string, cb ai.ModelStreamCallback) (string, error) {
		resp, err := genkit.Generate(ctx, g,
			ai.WithModel(model),
			ai.WithSystem(`
		You are an assistant for the HR team of an attendance tracking system.
		Your role is to answer questions about employee attendance: entries,
		exits, absences, late arrivals and monthly summaries.

		Guidelines:
		1. Answer from the database via the sql tool; never invent records.
		2. Month names in the data are lowercase Spanish ("enero" .. "diciembre").
		3. Entry and exit times are strings formatted "YYYY-MM-DD HH:MM:SS"; an
		   empty string means no scan happened.
		4. An employee is identified by the numeric code in employees.code,
		   not by the internal EmployeeId.
		5. When the user asks about lateness, the nominal start of the day is
		   09:00. Fridays are 5 expected hours, other weekdays 8.
		6. Keep answers short and state which days or records they are based on.

		Schema Design

employees
---------
- EmployeeId (INT, PK, AUTO_INCREMENT)
- Code (VARCHAR, unique badge code, e.g. "100001")
- PreferredName (VARCHAR)
- FirstName (VARCHAR)
- Surname (VARCHAR)
- Email (VARCHAR, nullable)
- DepartmentId (INT, nullable)
- StartDate (DATE, nullable)
- EndDate (DATE, nullable)
- Status (VARCHAR, "ACTIVE" or "INACTIVE")

attendance_days
---------------
- id (INT, PK, AUTO_INCREMENT)
- employee_id (VARCHAR, the badge code, FK -> employees.Code)
- year (INT)
- month (VARCHAR, lowercase Spanish month name)
- day (INT)
- entry_time (VARCHAR "YYYY-MM-DD HH:MM:SS", '' when absent)
- exit_time (VARCHAR "YYYY-MM-DD HH:MM:SS", '' when still open)
- explanation (TEXT, justification side-channel)
- observation (TEXT)
- registered_via (VARCHAR, "QR" or "MANUAL")
- unique (employee_id, year, month, day)

scan_events
-----------
- id (CHAR(36), PK, uuid)
- employee_id (VARCHAR)
- date (VARCHAR "YYYY-MM-DD")
- timestamp (VARCHAR "YYYY-MM-DD HH:MM:SS")
- via (VARCHAR)
- outcome (VARCHAR, "entry"/"exit"/"none" or an error note)

		`),
			ai.WithStreaming(cb),
			ai.WithTools(sqlExecution),
			ai.WithMessages(history...),
			ai.WithPrompt(input))
		if err != nil {
			return "", err
		}

		history = resp.History()

		return resp.Text(), nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", genkit.Handler(bot))
	log.Fatal(server.Start(ctx, "127.0.0.1:3400", mux))
}
