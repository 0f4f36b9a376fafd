package models

// StageCount is the number of stages in every journey map.
const StageCount = 6

// StageDefinition describes one fixed position in the journey.
type StageDefinition struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// 旅程的六個固定階段，順序即為顯示、圖表與匯出的順序
var stageDefinitions = [StageCount]StageDefinition{
	{
		Key:         "step1_trigger",
		Label:       "觸發事件",
		Description: "是什麼事情讓使用者開始這段旅程？",
	},
	{
		Key:         "step2_interaction",
		Label:       "初始互動",
		Description: "使用者第一次接觸產品或服務時發生了什麼？",
	},
	{
		Key:         "step3_trust",
		Label:       "建立信任",
		Description: "使用者如何開始相信這個產品或服務？",
	},
	{
		Key:         "step4_turning",
		Label:       "轉折點",
		Description: "旅程中最關鍵的改變或決定。",
	},
	{
		Key:         "step5_conclusion",
		Label:       "結論",
		Description: "這段體驗最後的結果是什麼？",
	},
	{
		Key:         "step6_aftermath",
		Label:       "後續影響",
		Description: "體驗結束後對使用者帶來的長期影響。",
	},
}

// StageDefinitions returns the six stage definitions in journey order.
func StageDefinitions() [StageCount]StageDefinition {
	return stageDefinitions
}

func GetStage(key string) (StageDefinition, bool) {
	for _, def := range stageDefinitions {
		if def.Key == key {
			return def, true
		}
	}
	return StageDefinition{}, false
}
