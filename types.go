package utfall

// Processing constants (rows-based)
const (
	// DefaultBatchSize is the default number of rows committed per transaction
	DefaultBatchSize = 10000
	// MinBatchSize is the minimum allowed rows per batch
	MinBatchSize = 1
)

// Source and destination defaults
const (
	// DefaultEndpoint is the Japan Post utf_all.csv download URL
	DefaultEndpoint = "https://www.post.japanpost.jp/zipcode/utf_all.csv"
	// DefaultTableName is the destination table name
	DefaultTableName = "utf_all"
	// defaultBaseDirName is the directory under the user's home holding all artifacts
	defaultBaseDirName = ".utf_all-sqlite"
)

// Artifact file names inside the base directory
const (
	// markerFileName holds the last fetched Last-Modified value
	markerFileName = "last-modified"
	// dataFileName is the downloaded CSV, before any compression extension
	dataFileName = "data.csv"
	// databaseFileName is the SQLite database file
	databaseFileName = "data.sqlite"
)

// File format delimiters
const (
	// csvDelimiter is the delimiter for CSV files
	csvDelimiter = ','
)

// Compression extensions
const (
	// extGZ is gzip compressed file extension
	extGZ = ".gz"
	// extBZ2 is bzip2 compressed file extension
	extBZ2 = ".bz2"
	// extXZ is xz compressed file extension
	extXZ = ".xz"
	// extZSTD is zstd compressed file extension
	extZSTD = ".zst"
)

// Network constants
const (
	// headerLastModified carries the freshness marker
	headerLastModified = "Last-Modified"
	// headerUserAgent identifies the client
	headerUserAgent = "User-Agent"
	// defaultUserAgent is sent when no user agent is configured
	defaultUserAgent = "utfall"
	// copyBufferSize is the chunk size used while streaming the download to disk
	copyBufferSize = 32 * 1024
)

// File permissions
const (
	// dirPerm is used for the base directory
	dirPerm = 0o755
	// filePerm is used for the marker and data files
	filePerm = 0o644
)
