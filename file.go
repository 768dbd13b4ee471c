package sqlframe

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nao1215/sqlframe/domain/model"
)

// FileType represents a supported table file format
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeLTSV represents LTSV file type
	FileTypeLTSV
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// extCSV is the CSV file extension
	extCSV = ".csv"
	// extTSV is the TSV file extension
	extTSV = ".tsv"
	// extLTSV is the LTSV file extension
	extLTSV = ".ltsv"
	// extParquet is the Parquet file extension
	extParquet = ".parquet"
	// extXLSX is the Excel XLSX file extension
	extXLSX = ".xlsx"
	// extGZ is the gzip compression extension
	extGZ = ".gz"
	// extBZ2 is the bzip2 compression extension
	extBZ2 = ".bz2"
	// extXZ is the xz compression extension
	extXZ = ".xz"
	// extZSTD is the zstd compression extension
	extZSTD = ".zst"
)

const (
	csvDelimiter = ','
	tsvDelimiter = '\t'
	// ltsvSeparator separates a label from its value in an LTSV field
	ltsvSeparator = ":"
)

// String returns the string representation of FileType
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "csv"
	case FileTypeTSV:
		return "tsv"
	case FileTypeLTSV:
		return "ltsv"
	case FileTypeParquet:
		return "parquet"
	case FileTypeXLSX:
		return "xlsx"
	default:
		return "unsupported"
	}
}

// Extension returns the file extension for the file type
func (ft FileType) Extension() string {
	switch ft {
	case FileTypeCSV:
		return extCSV
	case FileTypeTSV:
		return extTSV
	case FileTypeLTSV:
		return extLTSV
	case FileTypeParquet:
		return extParquet
	case FileTypeXLSX:
		return extXLSX
	default:
		return ""
	}
}

// DetectFileType returns the table format of path, ignoring any
// compression suffix. "users.csv.gz" is FileTypeCSV.
func DetectFileType(path string) FileType {
	base := NewCompressionFactory().RemoveCompressionExtension(strings.ToLower(path))

	switch {
	case strings.HasSuffix(base, extCSV):
		return FileTypeCSV
	case strings.HasSuffix(base, extTSV):
		return FileTypeTSV
	case strings.HasSuffix(base, extLTSV):
		return FileTypeLTSV
	case strings.HasSuffix(base, extParquet):
		return FileTypeParquet
	case strings.HasSuffix(base, extXLSX):
		return FileTypeXLSX
	default:
		return FileTypeUnsupported
	}
}

// IsSupportedFile reports whether LoadFile and SaveFile understand path
func IsSupportedFile(path string) bool {
	return DetectFileType(path) != FileTypeUnsupported
}

// TableNameFromPath derives a table name from a file path by dropping the
// directory, the compression suffix and the format extension.
// "data/users.csv.gz" becomes "users".
func TableNameFromPath(path string) string {
	name := NewCompressionFactory().RemoveCompressionExtension(filepath.Base(path))
	if ext := DetectFileType(name).Extension(); ext != "" {
		return name[:len(name)-len(ext)]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// LoadFile reads a table file into memory. The format follows the file
// extension and compressed files are decompressed transparently.
//
// The first row (or, for LTSV, the union of labels in order of appearance)
// is the header. Cell values are typed per column: INTEGER columns hold
// int64, REAL columns hold float64, the rest hold string. Empty cells are nil.
func LoadFile(path string) (*Table, error) {
	errCtx := NewErrorContext("load").WithFile(path)

	fileType := DetectFileType(path)
	if fileType == FileTypeUnsupported {
		return nil, errCtx.Error(ErrUnsupportedFormat, nil)
	}

	reader, cleanup, err := NewCompressionFactory().CreateReaderForFile(path)
	if err != nil {
		return nil, errCtx.Error(nil, err)
	}
	defer func() {
		_ = cleanup() // Ignore cleanup error since the data is already read
	}()

	var t *Table
	switch fileType {
	case FileTypeCSV:
		t, err = readDelimited(reader, csvDelimiter)
	case FileTypeTSV:
		t, err = readDelimited(reader, tsvDelimiter)
	case FileTypeLTSV:
		t, err = readLTSV(reader)
	case FileTypeParquet:
		t, err = readParquet(reader)
	case FileTypeXLSX:
		t, err = readXLSX(reader)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyData):
			return nil, errCtx.Error(nil, err)
		case errors.Is(err, model.ErrNoColumns),
			errors.Is(err, model.ErrEmptyColumnName),
			errors.Is(err, model.ErrDuplicateColumnName),
			errors.Is(err, model.ErrRowWidth):
			return nil, errCtx.Error(ErrInvalidTable, err)
		default:
			return nil, errCtx.WithDetails(fileType.String()).Error(nil, err)
		}
	}
	return t, nil
}

// SaveFile writes t to path in the format given by the file extension,
// compressing it when the path ends in .gz, .xz or .zst. An existing file
// is overwritten.
func SaveFile(t *Table, path string) error {
	errCtx := NewErrorContext("save").WithFile(path)

	if t == nil {
		return errCtx.Error(ErrInvalidTable, errNilTable)
	}

	fileType := DetectFileType(path)
	if fileType == FileTypeUnsupported {
		return errCtx.Error(ErrUnsupportedFormat, nil)
	}

	factory := NewCompressionFactory()
	writer, cleanup, err := factory.CreateWriterForFile(path, factory.DetectCompressionType(path))
	if err != nil {
		return errCtx.Error(nil, err)
	}

	switch fileType {
	case FileTypeCSV:
		err = writeDelimited(writer, t, csvDelimiter)
	case FileTypeTSV:
		err = writeDelimited(writer, t, tsvDelimiter)
	case FileTypeLTSV:
		err = writeLTSV(writer, t)
	case FileTypeParquet:
		err = writeParquet(writer, t)
	case FileTypeXLSX:
		err = writeXLSX(writer, t)
	}

	if cleanupErr := cleanup(); cleanupErr != nil && err == nil {
		err = cleanupErr
	}
	if err != nil {
		return errCtx.WithDetails(fileType.String()).Error(nil, err)
	}
	return nil
}

// tableFromStrings converts raw string records into a typed Table.
func tableFromStrings(header []string, records [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmptyData
	}

	h := model.NewHeader(header)
	if err := h.Validate(); err != nil {
		return nil, err
	}

	columns := model.InferStringColumns(h, records)
	rows := make([]model.Row, len(records))
	for i, record := range records {
		row := make(model.Row, len(h))
		for j := range h {
			if j < len(record) {
				row[j] = model.ConvertCell(record[j], columns[j].Type)
			}
		}
		rows[i] = row
	}
	return model.NewTable(h, rows)
}

// readDelimited parses CSV or TSV data. Rows must have as many fields as the header.
func readDelimited(reader io.Reader, delimiter rune) (*Table, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	if delimiter == tsvDelimiter {
		csvReader.LazyQuotes = true
	}

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyData
	}
	return tableFromStrings(records[0], records[1:])
}

// readLTSV parses LTSV data. The header is the union of labels in the order
// they first appear; a label missing from a line yields a nil cell.
func readLTSV(reader io.Reader) (*Table, error) {
	var (
		header   []string
		position = make(map[string]int)
		lines    []map[string]string
	)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := make(map[string]string)
		for pair := range strings.SplitSeq(line, "\t") {
			kv := strings.SplitN(pair, ltsvSeparator, 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			if _, seen := position[key]; !seen {
				position[key] = len(header)
				header = append(header, key)
			}
			fields[key] = kv[1]
		}
		if len(fields) > 0 {
			lines = append(lines, fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	records := make([][]string, len(lines))
	for i, fields := range lines {
		record := make([]string, len(header))
		for key, value := range fields {
			record[position[key]] = value
		}
		records[i] = record
	}
	return tableFromStrings(header, records)
}

// writeDelimited writes the header followed by every row as CSV or TSV.
func writeDelimited(writer io.Writer, t *Table, delimiter rune) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = delimiter

	if err := csvWriter.Write(t.Header()); err != nil {
		return err
	}
	for _, row := range t.Rows() {
		if err := csvWriter.Write(formatRow(row)); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// writeLTSV writes one label:value line per row. nil cells are omitted.
func writeLTSV(writer io.Writer, t *Table) error {
	header := t.Header()
	var buf bytes.Buffer
	for _, row := range t.Rows() {
		buf.Reset()
		for i, v := range row {
			if v == nil {
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('\t')
			}
			buf.WriteString(header[i])
			buf.WriteString(ltsvSeparator)
			buf.WriteString(model.FormatCell(v))
		}
		buf.WriteByte('\n')
		if _, err := writer.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write LTSV line: %w", err)
		}
	}
	return nil
}

// formatRow renders every cell of row as text.
func formatRow(row model.Row) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = model.FormatCell(v)
	}
	return cells
}
