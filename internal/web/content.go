package web

// PromptTemplate is the text users paste into ChatGPT (or another model) to
// draft the form content.
const PromptTemplate = `我想紀錄一個使用者旅程地圖，請根據以下問題協助我生成對應的表單內容：

---
**基本資訊**
1. 作者名稱（選填）：  
2. 使用者類型（例如：新手用戶、資深用戶）：  
3. 情境描述（例如：首次使用產品、遇到問題時）：  
4. 使用者的目標（例如：完成特定任務、解決問題）：  

---
**旅程步驟**
**Step 1: 觸發事件**
1. 使用者行為：  
2. 描述（該事件的具體情況）：  
3. 系統/產品回應：  
4. 痛點或機會（使用者面臨的挑戰或可改善的地方）：  
5. 情緒指數（1-10，數字即可）：  
6. 情緒描述（使用者當下的心情）：  

**Step 2: 初始互動**
1. 使用者行為：  
2. 描述：  
3. 系統/產品回應：  
4. 痛點或機會：  
5. 情緒指數（1-10）：  
6. 情緒描述：  

**Step 3: 建立信任**
1. 使用者行為：  
2. 描述：  
3. 系統/產品回應：  
4. 痛點或機會：  
5. 情緒指數（1-10）：  
6. 情緒描述：  

**Step 4: 轉折點**
1. 使用者行為：  
2. 描述：  
3. 系統/產品回應：  
4. 痛點或機會：  
5. 情緒指數（1-10）：  
6. 情緒描述：  

**Step 5: 結論**
1. 使用者行為：  
2. 描述：  
3. 系統/產品回應：  
4. 痛點或機會：  
5. 情緒指數（1-10）：  
6. 情緒描述：  

**Step 6: 後續影響**
1. 使用者行為：  
2. 描述：  
3. 系統/產品回應：  
4. 痛點或機會：  
5. 情緒指數（1-10）：  
6. 情緒描述：  

---
請根據我的回答總結並生成一份完整的表單內容，讓我能直接填寫到系統中。`

// Step is one entry of the "how to start" guide on the home page.
type Step struct {
	Title       string
	Description string
}

var howToStart = []Step{
	{"回憶並整理經歷", "想一想你想要分享的使用者體驗，可以是產品使用、服務體驗或是生活經歷。"},
	{"與 ChatGPT 對話", "使用建議的 GPT Prompt 與 ChatGPT 進行自然對話，幫助理清思路並結構化你的故事內容。"},
	{"複製並總結內容", "將 ChatGPT 生成的結構化內容複製到表單，並按照六個關鍵階段進行調整和補充。"},
	{"提交旅程地圖", "確認表單內容完整後，點擊「提交旅程地圖」，即可將你的經歷加入我們的資料庫。"},
	{"下載並分享", "下載生成的 CSV 文件，或與朋友分享這段經歷，幫助更多人了解使用者體驗。"},
}

func HowToStart() []Step {
	return howToStart
}
