package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hireform/hireform/internal/interview"
	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/providers/llm"
	"github.com/hireform/hireform/internal/providers/pdftext"
	mongorepo "github.com/hireform/hireform/internal/repositories/mongo"
	pgrepo "github.com/hireform/hireform/internal/repositories/postgres"
	"github.com/hireform/hireform/internal/storage"
	"github.com/hireform/hireform/internal/utils"
	"github.com/sirupsen/logrus"
)

// maxResumeTextChars bounds how much extracted text reaches the structuring
// prompt.
const maxResumeTextChars = 12000

const signedURLTTL = time.Hour

const resumeProfileSystem = `You extract structured resume info for hiring screening.
Return ONLY valid JSON. No markdown.`

const resumeProfileUserPreamble = `Extract a compact JSON object from this resume text.

Return JSON with these keys:
{
  "name": string|null,
  "email": string|null,
  "work_experience": [
    {
      "company": string,
      "role": string,
      "duration": string|null,
      "description": string,
      "highlights": string[]
    }
  ],
  "skills": string[],
  "education": [{"school": string|null, "degree": string|null, "major": string|null}],
  "years_experience": number|null,
  "projects": [
    {
      "name": string,
      "description": string,
      "technologies": string[]
    }
  ]
}

Be strict: if unknown, use null/[].
Resume text:
`

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

type ResumeUploadResult struct {
	ResumeURL  string                `json:"resumeUrl"`
	ResumePath string                `json:"resumePath"`
	Profile    *models.ResumeProfile `json:"resumeProfile"`
}

type ResumeService interface {
	// Process stores the uploaded PDF, extracts its text, and structures it
	// into the profile the follow-up controller consumes.
	Process(ctx context.Context, access *AccessContext, fileName string, data []byte) (*ResumeUploadResult, error)
}

type resumeService struct {
	files     pgrepo.ResumeFileRepository
	store     storage.Uploader
	signer    storage.Signer
	extractor pdftext.Extractor
	llm       llm.Provider
	aiLogs    mongorepo.AILogRepository
	log       *logrus.Logger
}

func NewResumeService(
	files pgrepo.ResumeFileRepository,
	store storage.Uploader,
	signer storage.Signer,
	extractor pdftext.Extractor,
	provider llm.Provider,
	aiLogs mongorepo.AILogRepository,
	log *logrus.Logger,
) ResumeService {
	return &resumeService{
		files:     files,
		store:     store,
		signer:    signer,
		extractor: extractor,
		llm:       provider,
		aiLogs:    aiLogs,
		log:       log,
	}
}

func (s *resumeService) Process(ctx context.Context, access *AccessContext, fileName string, data []byte) (*ResumeUploadResult, error) {
	const op = "ResumeService.Process"

	if len(data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No file uploaded", nil)
	}

	form := access.Form
	objectName := fmt.Sprintf("resumes/%s/%s/%d_%s",
		access.Mode, form.ID, time.Now().UnixMilli(), slugifyFileName(fileName))

	storedPath, err := s.store.Upload(ctx, objectName, "application/pdf", bytes.NewReader(data))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store resume", err)
	}

	text, err := s.extractor.ExtractText(data)
	if err != nil || strings.TrimSpace(text) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Could not read text from PDF", err)
	}
	if len(text) > maxResumeTextChars {
		text = text[:maxResumeTextChars]
	}

	profile, err := s.structureProfile(ctx, form.ID, access.Mode, text)
	if err != nil {
		return nil, err
	}

	row := &models.ResumeFile{
		ID:         uuid.NewString(),
		FormID:     form.ID,
		FileName:   fileName,
		Path:       storedPath,
		FileSize:   len(data),
		MimeType:   "application/pdf",
		UploadedAt: time.Now().UTC(),
	}
	if err := s.files.Insert(ctx, row); err != nil {
		// metadata is advisory; the upload and profile are already good
		s.log.WithError(err).WithField("form_id", form.ID).Warn("failed to persist resume file metadata")
	}

	url, err := s.signer.SignedGetURL(ctx, storedPath, signedURLTTL)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign resume URL", err)
	}

	return &ResumeUploadResult{
		ResumeURL:  url,
		ResumePath: storedPath,
		Profile:    profile,
	}, nil
}

func (s *resumeService) structureProfile(ctx context.Context, formID, mode, resumeText string) (*models.ResumeProfile, error) {
	const op = "ResumeService.structureProfile"

	user := resumeProfileUserPreamble + resumeText

	start := time.Now()
	raw, genErr := s.llm.Generate(ctx, resumeProfileSystem, user, interview.ResumeProfileTemperature)

	l := &models.AILog{
		FormID:      formID,
		Mode:        mode,
		Kind:        models.AILogResumeProfile,
		Status:      "ok",
		PromptChars: len(resumeProfileSystem) + len(user),
		OutputChars: len(raw),
		LatencyMS:   time.Since(start).Milliseconds(),
	}
	if genErr != nil {
		l.Status = "error"
		l.Error = genErr.Error()
	}
	if err := s.aiLogs.Insert(ctx, l); err != nil {
		s.log.WithError(err).WithField("form_id", formID).Warn("failed to write ai audit log")
	}

	if genErr != nil {
		return nil, utils.E(utils.CodeInternal, op, "Resume processing failed", genErr)
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	var profile models.ResumeProfile
	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), &profile); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to parse resume JSON", err)
	}
	return &profile, nil
}

func slugifyFileName(name string) string {
	if name == "" {
		name = "resume.pdf"
	}
	return unsafeFileChars.ReplaceAllString(name, "_")
}
