package pages

import (
	"context"
	"fmt"

	"github.com/iver-wharf/wharf-pages/pkg/artifact"
)

// UploadMessageOK is the acknowledgement message of a successful upload.
const UploadMessageOK = "ok"

// PackageAndUpload packages the directory into an archive and uploads it to
// the project. The archive is removed after a successful upload, but is left
// on disk if the upload fails.
func PackageAndUpload(ctx context.Context, api UploadAPI, cfg Config, projectID, dir string) (artifact.Artifact, error) {
	art, err := artifact.Package(dir, artifact.Options{IgnoreFile: cfg.IgnoreFile})
	if err != nil {
		return artifact.Artifact{}, stepError(ErrPackaging,
			fmt.Errorf("package directory %q: %w", dir, err))
	}
	log.Info().
		WithString("archive", art.Path).
		WithInt("files", art.Entries).
		Message("Packaged directory.")

	ack, err := api.UploadDeployment(ctx, projectID, art.Path)
	if err != nil {
		return art, stepError(ErrUpload, fmt.Errorf("upload %q: %w", art.Path, err))
	}
	if !isAcknowledged(cfg.Backend, ack.Message) {
		log.Warn().
			WithString("message", ack.Message).
			WithString("archive", art.Path).
			Message("Upload was not acknowledged, leaving archive on disk.")
		return art, stepError(ErrUpload, ErrDeploymentUnsuccessful)
	}
	log.Info().WithString("project", projectID).Message("Uploaded archive.")

	if err := art.Remove(); err != nil {
		log.Warn().WithError(err).WithString("archive", art.Path).
			Message("Failed to remove archive after upload.")
	}
	return art, nil
}

func isAcknowledged(backend Backend, message string) bool {
	if backend == BackendDirect {
		// only the HTTP status counts, but an explicit message must still be ok
		return message == "" || message == UploadMessageOK
	}
	return message == UploadMessageOK
}
