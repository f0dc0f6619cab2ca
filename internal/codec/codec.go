// Package codec 负责多值字段与结构化价格数据的编解码
// 数据库中以平面字符串列存储，读写两侧统一经过本包转换
package codec

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EncodeStringList 将多值字段规范化为 JSON 数组字符串
// 条目去除首尾空白、去重（保留首次出现顺序），空结果返回 ""
// 条目本身可能已是序列化好的 JSON 数组（防御性解包，只解一层）
func EncodeStringList(values []string) string {
	cleaned := make([]string, 0, len(values))
	seen := make(map[string]struct{})

	appendItem := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		cleaned = append(cleaned, s)
	}

	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}

		// 已序列化的数组只向下解一层，避免对病态数据反复解包
		if strings.HasPrefix(trimmed, "[") {
			var parsed []interface{}
			if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
				for _, item := range parsed {
					if s, ok := scalarString(item); ok {
						appendItem(s)
					}
				}
				continue
			}
		}

		appendItem(trimmed)
	}

	if len(cleaned) == 0 {
		return ""
	}
	out, err := json.Marshal(cleaned)
	if err != nil {
		return ""
	}
	return string(out)
}

// DecodeStringList 将持久化字符串还原为规范化列表
// 损坏或无法识别的 JSON 退化为单元素列表，读取侧永不报错
func DecodeStringList(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return []string{}
	}

	// seen 集合防止自引用字符串导致的无限解包
	seen := make(map[string]struct{})
	current := trimmed
	for {
		if current == "" {
			return []string{}
		}
		if _, ok := seen[current]; ok {
			return []string{current}
		}
		seen[current] = struct{}{}

		var parsed interface{}
		if err := json.Unmarshal([]byte(current), &parsed); err != nil {
			return []string{current}
		}

		switch v := parsed.(type) {
		case []interface{}:
			return normalizeList(v)
		case string:
			current = strings.TrimSpace(v)
		default:
			// 可解析但既非列表也非字符串，按单元素处理
			return []string{trimmed}
		}
	}
}

// EncodePriceData 将价格数据规范化为 JSON 对象字符串
// 非对象或无法解析的输入视为缺失，返回 ""
func EncodePriceData(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case map[string]interface{}:
		if v == nil {
			return ""
		}
		out, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(out)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return ""
		}
		var parsed interface{}
		if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
			return ""
		}
		obj, ok := parsed.(map[string]interface{})
		if !ok {
			return ""
		}
		out, err := json.Marshal(obj)
		if err != nil {
			return ""
		}
		return string(out)
	default:
		return ""
	}
}

// DecodePriceData 将持久化字符串还原为价格对象
// 损坏或非对象 JSON 返回 nil，读取侧永不报错
func DecodePriceData(value string) map[string]interface{} {
	seen := make(map[string]struct{})
	current := strings.TrimSpace(value)
	for current != "" {
		if _, ok := seen[current]; ok {
			return nil
		}
		seen[current] = struct{}{}

		var parsed interface{}
		if err := json.Unmarshal([]byte(current), &parsed); err != nil {
			return nil
		}

		switch v := parsed.(type) {
		case map[string]interface{}:
			return v
		case string:
			current = strings.TrimSpace(v)
		default:
			return nil
		}
	}
	return nil
}

// normalizeList 读取侧的列表规范化：仅保留非空字符串，去重保序
func normalizeList(items []interface{}) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{})
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// scalarString 写入侧的条目清洗：字符串与数字保留，其余类型丢弃
func scalarString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	default:
		return "", false
	}
}
