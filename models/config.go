package models

type Config struct {
	Debug bool `yaml:"debug" envconfig:"VARSIFT_DEBUG"`

	Api struct {
		Url                            string `yaml:"url" envconfig:"VARSIFT_API_URL"`
		Port                           string `yaml:"port" envconfig:"VARSIFT_API_INTERNAL_PORT"`
		VcfPath                        string `yaml:"vcfPath" envconfig:"VARSIFT_API_VCF_PATH"`
		PresetsPath                    string `yaml:"presetsPath" envconfig:"VARSIFT_API_PRESETS_PATH"`
		BulkIndexingCap                int    `yaml:"bulkIndexingCap" envconfig:"VARSIFT_API_BULK_INDEXING_CAP"`
		FileProcessingConcurrencyLevel int    `yaml:"fileProcessingConcurrencyLevel" envconfig:"VARSIFT_API_FILE_PROC_CONC_LVL"`
		LineProcessingConcurrencyLevel int    `yaml:"lineProcessingConcurrencyLevel" envconfig:"VARSIFT_API_LINE_PROC_CONC_LVL"`
	} `yaml:"api"`

	Elasticsearch struct {
		Url      string `yaml:"url" envconfig:"VARSIFT_ES_URL"`
		Username string `yaml:"username" envconfig:"VARSIFT_ES_USERNAME"`
		Password string `yaml:"password" envconfig:"VARSIFT_ES_PASSWORD"`
	} `yaml:"elasticsearch"`
}
