package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/types"
)

// DatabaseFilename is the snapshot entry inside an archive
const DatabaseFilename = "db.json"

// ArchiveFile is a single entry of an export bundle
type ArchiveFile struct {
	Filename string
	Modified time.Time
	Content  []byte
}

// Archive describes the contents of an export bundle
type Archive struct {
	// Items is the snapshot stored as db.json
	Items []types.Item

	// Files holds the CSV exports: the full list first, then one per
	// category that has items
	Files []ArchiveFile
}

// BuildArchive prepares the bundle contents for items
func BuildArchive(items []types.Item, now time.Time) *Archive {
	archive := &Archive{
		Items: types.CloneItems(items),
		Files: []ArchiveFile{{Filename: Filename, Modified: now, Content: CSV(items)}},
	}

	for _, c := range types.Categories {
		var subset []types.Item
		for _, it := range items {
			if it.Category == c {
				subset = append(subset, it)
			}
		}
		if len(subset) == 0 {
			continue
		}
		archive.Files = append(archive.Files, ArchiveFile{
			Filename: categoryFilename(c),
			Modified: now,
			Content:  CSV(subset),
		})
	}
	return archive
}

// CreateArchive writes the export bundle for items to outputPath
func CreateArchive(items []types.Item, outputPath string) error {
	return WriteArchive(BuildArchive(items, time.Now()), outputPath)
}

// WriteArchive writes a prepared bundle to outputPath
func WriteArchive(archive *Archive, outputPath string) (err error) {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close archive file: %w", cerr)
		}
	}()

	zipWriter := zip.NewWriter(file)

	db, err := json.MarshalIndent(archive.Items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	modified := time.Now()
	if len(archive.Files) > 0 {
		modified = archive.Files[0].Modified
	}
	if err := addToZip(zipWriter, DatabaseFilename, modified, db); err != nil {
		return fmt.Errorf("failed to add database to zip: %w", err)
	}

	for _, f := range archive.Files {
		if err := addToZip(zipWriter, f.Filename, f.Modified, f.Content); err != nil {
			return fmt.Errorf("failed to add %s to zip: %w", f.Filename, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish zip: %w", err)
	}
	return nil
}

func addToZip(zipWriter *zip.Writer, name string, modified time.Time, content []byte) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = writer.Write(content)
	return err
}

// ExtractArchive reads a bundle written by WriteArchive
func ExtractArchive(archivePath string) (*Archive, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = reader.Close() }()

	archive := &Archive{}
	foundDB := false
	for _, file := range reader.File {
		content, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
		if file.Name == DatabaseFilename {
			items, err := inventory.DecodeSnapshot(content)
			if err != nil {
				return nil, err
			}
			archive.Items = items
			foundDB = true
			continue
		}
		archive.Files = append(archive.Files, ArchiveFile{
			Filename: file.Name,
			Modified: file.Modified,
			Content:  content,
		})
	}

	if !foundDB {
		return nil, fmt.Errorf("archive has no %s", DatabaseFilename)
	}
	return archive, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
