package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	v1 "atiempo.app/atiempo/api/v1"
)

// Minimal badge terminal emulator: reads codes from stdin and submits them
// as scans. Handy against a dev server.
func main() {
	baseURL := os.Getenv("ATIEMPO_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8090"
	}
	token := os.Getenv("ATIEMPO_DEVICE_TOKEN")
	if token == "" {
		log.Fatal("ATIEMPO_DEVICE_TOKEN not set")
	}

	client := v1.NewAtiempoClient(baseURL, token)

	fmt.Println("Enter badge codes, one per line. Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		code := strings.TrimSpace(scanner.Text())
		if code == "" {
			continue
		}

		outcome, err := client.Attendance.Scan(&v1.ScanRequestDTO{EmployeeCode: code})
		if err != nil {
			fmt.Printf("scan failed: %v\n", err)
			continue
		}
		fmt.Printf("%s: %s (%s)\n", code, outcome.Message, outcome.Timestamp)
	}
}
