package common

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"path"
	"runtime"

	"varsift/api/models"

	yaml "gopkg.in/yaml.v2"
)

// DemoVcfHeader and DemoVcfRows back the filter and preview tests with a
// small but realistic single-sample VCF.
const DemoVcfHeader = "##fileformat=VCFv4.2\n" +
	"##INFO=<ID=DP,Number=1,Type=Integer,Description=\"Total Depth\">\n" +
	"##INFO=<ID=AF,Number=A,Type=Float,Description=\"Allele Frequency\">\n" +
	"##INFO=<ID=DB,Number=0,Type=Flag,Description=\"dbSNP membership\">\n" +
	"##INFO=<ID=ANN,Number=.,Type=String,Description=\"Functional annotations: 'Allele | Annotation | Annotation_Impact | Gene_Name'\">\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tNA12878"

var DemoVcfRows = []string{
	"1\t230710048\trs3737940\tA\tG\t617.77\tPASS\tDP=30;AF=0.5;DB;ANN=G|missense_variant|MODERATE|AGT\tGT:DP\t0/1:15",
	"1\t230714122\trs699\tT\tC\t88.1\tPASS\tDP=14;AF=0.25\tGT:DP\t0/0:14",
	"2\t47805601\t.\tG\tA\t9.6\tq10\tAF=0.1;ANN=A|intron_variant|MODIFIER|TTC7A\tGT:DP\t0/1:7",
}

// DemoPresetsYaml is a well formed preset catalogue for handler tests.
const DemoPresetsYaml = `presets:
  - name: high-quality
    description: Passing calls with solid depth
    filter: 'QUAL > 30 && INFO.DP >= 10'
  - name: rare-and-damaging
    description: Impactful annotations
    filter: 'ANN[*].Annotation_Impact == "HIGH"'
`

func InitConfig() *models.Config {
	var cfg models.Config

	// get this file's path
	_, filename, _, _ := runtime.Caller(0)
	folderpath := path.Dir(filename)

	// retrieve common's test.config
	f, err := os.Open(fmt.Sprintf("%s/test.config.yml", folderpath))
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&cfg)
	if err != nil {
		processError(err)
	}

	if cfg.Debug {
		http.DefaultTransport.(*http.Transport).TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &cfg
}

func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}
