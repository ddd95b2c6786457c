package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port            string
	WorkerCount     int
	RequestTimeout  int
	APIAccessKey    string
	CompetitorsFile string

	// Competitor analysis configuration
	MaxCompetitors    int
	CompetitorTimeout int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
