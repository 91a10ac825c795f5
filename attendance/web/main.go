package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"atiempo.app/atiempo/attendance/report"
	"atiempo.app/atiempo/attendance/web/handlers"
	"atiempo.app/atiempo/core"
	"atiempo.app/atiempo/infrastructure/communication"
	"atiempo.app/atiempo/web/middlewares"
	"github.com/gin-gonic/gin"
)

func main() {
	r := gin.Default()
	dsn := os.Getenv("DSN")
	fmt.Printf("using DSN: %s\n", dsn)
	region := os.Getenv("AWS_REGION")
	fmt.Printf("using REGION: %s\n", region)
	dm, err := core.New(dsn, 10)

	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	base64Secret := os.Getenv("ATIEMPO_SIGNING_SECRET")
	jwtSecret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	var sender report.Sender
	if bucket := os.Getenv("ATIEMPO_REPORT_BUCKET"); bucket != "" {
		var slackClient *communication.Slack
		if os.Getenv("SLACK_BOT_TOKEN") != "" {
			slackClient = communication.ConnectSlack()
		}
		sender = &report.S3EmailSender{
			Bucket: bucket,
			From:   os.Getenv("ATIEMPO_REPORT_FROM"),
			Slack:  slackClient,
		}
	} else {
		log.Println("[WARN] ATIEMPO_REPORT_BUCKET not set, report delivery disabled")
	}

	protected := r.Group("/api/atiempo/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		handlers.Register(protected, dm, sender)
	}

	r.Run("0.0.0.0:8090")
}
