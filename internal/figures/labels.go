package figures

import "github.com/mwiater/inaviz/internal/appconfig"

var labels = map[string]map[string]string{
	"baseline":             {appconfig.LanguageEnglish: "Baseline", appconfig.LanguageChinese: "基准方法"},
	"mina":                 {appconfig.LanguageEnglish: "MINA", appconfig.LanguageChinese: "MINA"},
	"oversubscription":     {appconfig.LanguageEnglish: "Link oversubscription ratio", appconfig.LanguageChinese: "链路超额比例"},
	"jctScore":             {appconfig.LanguageEnglish: "INA efficiency score", appconfig.LanguageChinese: "在网聚合效能评分"},
	"sharpRatio":           {appconfig.LanguageEnglish: "INA utilization", appconfig.LanguageChinese: "在网聚合利用率"},
	"datasetID":            {appconfig.LanguageEnglish: "Dataset ID", appconfig.LanguageChinese: "采集数据编号"},
	"candidateTrees":       {appconfig.LanguageEnglish: "Candidate aggregation trees", appconfig.LanguageChinese: "候选聚合树数量"},
	"runtimeMs":            {appconfig.LanguageEnglish: "Runtime (ms)", appconfig.LanguageChinese: "运行时间 (毫秒)"},
	"all":                  {appconfig.LanguageEnglish: "All", appconfig.LanguageChinese: "全部"},
	"algorithmRuntime":     {appconfig.LanguageEnglish: "Algorithm runtime", appconfig.LanguageChinese: "算法运行时间"},
	"algorithmPerformance": {appconfig.LanguageEnglish: "Algorithm performance", appconfig.LanguageChinese: "算法性能表现"},
	"processedRequests":    {appconfig.LanguageEnglish: "Processed training requests", appconfig.LanguageChinese: "已处理的训练请求数量"},
	"conflictProbability":  {appconfig.LanguageEnglish: "Conflict probability", appconfig.LanguageChinese: "冲突概率"},
	"treeConflicts":        {appconfig.LanguageEnglish: "Aggregation tree conflict probability", appconfig.LanguageChinese: "聚合树冲突概率"},
	"fragmentCount":        {appconfig.LanguageEnglish: "Fragments", appconfig.LanguageChinese: "碎片数量"},
	"resourceFragments":    {appconfig.LanguageEnglish: "Compute resource fragments", appconfig.LanguageChinese: "计算资源碎片数量"},
	"aggBandwidth":         {appconfig.LanguageEnglish: "Aggregation bandwidth (GB/s)", appconfig.LanguageChinese: "聚合带宽 (GB/s)"},
	"iterationDuration":    {appconfig.LanguageEnglish: "Iteration duration (s)", appconfig.LanguageChinese: "迭代时间 (秒)"},
	"traceID":              {appconfig.LanguageEnglish: "Trace ID", appconfig.LanguageChinese: "任务序列编号"},
	"avgJobSize":           {appconfig.LanguageEnglish: "Average job size", appconfig.LanguageChinese: "平均任务规模"},
	"density":              {appconfig.LanguageEnglish: "Density", appconfig.LanguageChinese: "概率密度"},
	"cumulative":           {appconfig.LanguageEnglish: "Cumulative probability", appconfig.LanguageChinese: "累积概率"},
	"value":                {appconfig.LanguageEnglish: "Value", appconfig.LanguageChinese: "数值"},
}

// Label returns the display text of key in lang, falling back to English and
// then to the key itself.
func Label(lang, key string) string {
	entry, ok := labels[key]
	if !ok {
		return key
	}
	if s, ok := entry[lang]; ok {
		return s
	}
	return entry[appconfig.LanguageEnglish]
}
