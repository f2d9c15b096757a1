package media

import (
	"context"
	"errors"
	"path/filepath"

	"google.golang.org/genai"
)

// GeminiService implements Service with the Gemini Files API.
type GeminiService struct {
	client *genai.Client
}

// NewGeminiService creates a Files API client authenticated with apiKey.
func NewGeminiService(ctx context.Context, apiKey string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiService{client: client}, nil
}

// NewGeminiServiceFromClient wraps an existing client.
func NewGeminiServiceFromClient(client *genai.Client) *GeminiService {
	return &GeminiService{client: client}
}

func (s *GeminiService) Upload(ctx context.Context, path, mimeType string) (*RemoteFile, error) {
	f, err := s.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: filepath.Base(path),
	})
	if err != nil {
		return nil, err
	}
	return fromGenai(f), nil
}

func (s *GeminiService) Get(ctx context.Context, name string) (*RemoteFile, error) {
	f, err := s.client.Files.Get(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	return fromGenai(f), nil
}

func fromGenai(f *genai.File) *RemoteFile {
	rf := &RemoteFile{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
	}
	switch f.State {
	case genai.FileStateProcessing:
		rf.State = StateProcessing
	case genai.FileStateActive:
		rf.State = StateActive
	case genai.FileStateFailed:
		rf.State = StateFailed
	default:
		rf.State = StateUnknown
	}
	if f.Error != nil {
		rf.Error = f.Error.Message
	}
	return rf
}
