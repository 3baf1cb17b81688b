package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/rankview/internal/client"
	"github.com/alexisbeaulieu97/rankview/internal/logger"
)

// Error messages returned by /evaluate.
const (
	MsgNoFilePart     = "No file part"
	MsgNoSelectedFile = "No selected file"
	MsgInvalidJD      = "Invalid JD file"
	MsgUnreadableJD   = "Could not extract text from JD"
	MsgNoValidResumes = "No valid resumes processed"
)

// DefaultBodyLimit caps a whole upload.
const DefaultBodyLimit = 16 << 20

const requestIDContextKey = "requestid"

// Options configures the reference evaluation service.
type Options struct {
	Addr      string
	BodyLimit int
	Logger    *logger.Logger
}

// Server is the reference evaluation service.
type Server struct {
	app  *fiber.App
	addr string
	log  *logger.Logger
}

// New builds the fiber app and registers its routes.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	limit := opts.BodyLimit
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	s := &Server{addr: opts.Addr, log: log}
	s.app = fiber.New(fiber.Config{
		AppName:               "rankview evaluation service",
		BodyLimit:             limit,
		ReadTimeout:           60 * time.Second,
		WriteTimeout:          60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDContextKey,
	}))
	s.app.Use(s.logRequests)

	s.app.Get("/health", s.handleHealth)
	s.app.Post(client.EvaluatePath, s.handleEvaluate)

	return s
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen() error {
	s.log.With("addr", s.addr).Info("evaluation service listening")
	return s.app.Listen(s.addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleEvaluate(c *fiber.Ctx) error {
	log := s.requestLogger(c)

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, MsgNoFilePart)
	}

	jdFiles := form.File[client.JobDescriptionField]
	resumeFiles := form.File[client.CandidatesField]
	if len(jdFiles) == 0 || len(resumeFiles) == 0 {
		return badRequest(c, MsgNoFilePart)
	}

	jd := jdFiles[0]
	if strings.TrimSpace(jd.Filename) == "" {
		return badRequest(c, MsgNoSelectedFile)
	}
	if !Allowed(jd.Filename) {
		return badRequest(c, MsgInvalidJD)
	}

	jdText, err := readUpload(jd)
	if err != nil || strings.TrimSpace(jdText) == "" {
		log.WithFields(map[string]any{"file": jd.Filename, "reason": errText(err)}).Warn("job description unreadable")
		return badRequest(c, MsgUnreadableJD)
	}

	docs := make([]Document, 0, len(resumeFiles))
	for _, fh := range resumeFiles {
		name := filepath.Base(fh.Filename)
		if strings.TrimSpace(fh.Filename) == "" || !Allowed(name) {
			log.With("file", fh.Filename).Debug("skipping resume with unsupported name")
			continue
		}
		text, err := readUpload(fh)
		if err != nil || strings.TrimSpace(text) == "" {
			log.WithFields(map[string]any{"file": name, "reason": errText(err)}).Warn("skipping unreadable resume")
			continue
		}
		docs = append(docs, Document{Filename: name, Text: text})
	}

	if len(docs) == 0 {
		return badRequest(c, MsgNoValidResumes)
	}

	set := Evaluate(jdText, docs)
	log.WithFields(map[string]any{
		"received":  len(resumeFiles),
		"evaluated": len(set),
	}).Info("evaluation complete")

	return c.JSON(set)
}

// logRequests writes one structured line per request. Errors are rendered
// here so the logged status is the one sent.
func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.requestLogger(c).WithFields(map[string]any{
		"method":  c.Method(),
		"path":    c.Path(),
		"status":  c.Response().StatusCode(),
		"latency": time.Since(start).String(),
	}).Debug("request handled")
	return nil
}

func (s *Server) requestLogger(c *fiber.Ctx) *logger.Logger {
	if id, ok := c.Locals(requestIDContextKey).(string); ok {
		return s.log.With("request_id", id)
	}
	return s.log
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func readUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return Extract(fh.Filename, data)
}

func errText(err error) string {
	if err == nil {
		return "empty document"
	}
	return err.Error()
}
