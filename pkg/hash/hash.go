package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// 元数据字段不参与内容哈希，避免时间戳导致的无效差异
var metaFields = []string{
	"id",
	"create_time",
	"update_time",
	"last_sync_time",
	"collected_at",
	"creator",
	"modifier",
}

// Content 计算对象业务字段的 SHA256 哈希，用于快照变更检测。
// json.Marshal 对 map 按 key 排序，同一内容总是得到同一哈希。
func Content(obj interface{}) (string, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	var objMap map[string]interface{}
	if err := json.Unmarshal(data, &objMap); err != nil {
		// 非对象类型（数组等）直接对原始序列化结果哈希
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	}

	for _, field := range metaFields {
		delete(objMap, field)
	}

	cleanData, err := json.Marshal(objMap)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(cleanData)
	return hex.EncodeToString(sum[:]), nil
}
