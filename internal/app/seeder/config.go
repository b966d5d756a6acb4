package seeder

// Config holds the source file locations for the import pipeline.
type Config struct {
	RadicalsPath  string
	KanjidicPath  string
	KradfilePath  string
	Kradfile2Path string
	JMdictPath    string

	// DryRun parses everything but writes nothing.
	DryRun bool
}
