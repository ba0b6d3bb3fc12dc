package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const contactThanks = "Thank you for your message!"

// ContactSubmission is the contact form as posted. Fields are taken as-is.
type ContactSubmission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (p *portfolio) home(c *gin.Context) {
	p.render(c, http.StatusOK, "index.html", nil)
}

func (p *portfolio) about(c *gin.Context) {
	p.render(c, http.StatusOK, "about.html", nil)
}

func (p *portfolio) skills(c *gin.Context) {
	skills, err := p.content.ListSkillCategories(c.Request.Context())
	if err != nil {
		_ = c.Error(fmt.Errorf("failed to list skill categories: %w", err))
		return
	}

	p.render(c, http.StatusOK, "skills.html", gin.H{
		"skills": skills,
	})
}

func (p *portfolio) projects(c *gin.Context) {
	projects, err := p.content.ListProjects(c.Request.Context())
	if err != nil {
		_ = c.Error(fmt.Errorf("failed to list projects: %w", err))
		return
	}

	p.render(c, http.StatusOK, "projects.html", gin.H{
		"projects": projects,
	})
}

func (p *portfolio) resume(c *gin.Context) {
	resume, err := p.content.ListResumeEntries(c.Request.Context())
	if err != nil {
		_ = c.Error(fmt.Errorf("failed to list resume entries: %w", err))
		return
	}

	p.render(c, http.StatusOK, "resume.html", gin.H{
		"experience": resume.Experience,
		"education":  resume.Education,
	})
}

func (p *portfolio) contact(c *gin.Context) {
	p.render(c, http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
	})
}

// submitContact logs the submission, queues a thank-you notice for the
// session and sends the browser back to the contact page.
func (p *portfolio) submitContact(c *gin.Context) {
	submission := ContactSubmission{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}

	p.log.Info("Contact form submitted",
		"name", submission.Name,
		"email", submission.Email,
		"subject", submission.Subject,
		"message", submission.Message,
		requestIDKey, c.GetString(requestIDKey),
	)

	sessionID, err := p.sessions.Ensure(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	p.flashes.Enqueue(sessionID, FlashNotice{Message: contactThanks, Category: flashSuccess})

	c.Redirect(http.StatusSeeOther, "/contact")
}
