// Package pricing 从异构价格数据推导统一的排序键
// 排序值只在内存中使用，从不落库
package pricing

import (
	"math"
	"sort"
	"strconv"

	"github.com/modelpricehub/ModelPriceHub-API/internal/codec"
	"github.com/modelpricehub/ModelPriceHub-API/internal/models"
)

// tokenKeys token 计价时按优先级取第一个数值字段
var tokenKeys = []string{"input_token_1m", "output_token_1m", "input_token_cached_1m"}

// tieredFallbackKeys tiered 计价缺少 price_per_unit 时的候选字段
var tieredFallbackKeys = []string{"input_price_per_unit", "cached_price_per_unit", "output_price_per_unit"}

// Rank 按 price_model 判别式计算排序值
// 无法得出可用价格时返回 ok=false（视为缺失）
func Rank(priceModel string, priceData map[string]interface{}) (float64, bool) {
	switch priceModel {
	case models.PriceModelFree:
		// free 恒为 0，不看 price_data
		return 0, true

	case models.PriceModelToken:
		base, ok := priceData["base"].(map[string]interface{})
		if !ok {
			return 0, false
		}
		for _, key := range tokenKeys {
			if v, ok := numeric(base[key]); ok {
				return v, true
			}
		}

	case models.PriceModelCall:
		base, ok := priceData["base"].(map[string]interface{})
		if !ok {
			return 0, false
		}
		if v, ok := numeric(base["price_per_call"]); ok {
			return v, true
		}

	case models.PriceModelTiered:
		tiers, ok := priceData["tiers"].([]interface{})
		if !ok || len(tiers) == 0 {
			return 0, false
		}
		first, ok := tiers[0].(map[string]interface{})
		if !ok {
			return 0, false
		}
		// 阶梯价里常见字符串编码的数字，这里一并接受
		if v, ok := numericOrString(first["price_per_unit"]); ok {
			return v, true
		}
		for _, key := range tieredFallbackKeys {
			if v, ok := numericOrString(first[key]); ok {
				return v, true
			}
		}
	}

	return 0, false
}

// SortModels 按价格排序键稳定排序
// 无价格的行在任一方向都排在所有有价格的行之后
func SortModels(items []*models.Model, descending bool) {
	type ranked struct {
		model *models.Model
		key   float64
	}

	rs := make([]ranked, len(items))
	for i, m := range items {
		key, ok := Rank(m.PriceModel, codec.DecodePriceData(m.PriceData))
		if !ok {
			// 升序用 +Inf、降序用 -Inf，保证缺失价格总是垫底
			if descending {
				key = math.Inf(-1)
			} else {
				key = math.Inf(1)
			}
		}
		rs[i] = ranked{model: m, key: key}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		if descending {
			return rs[i].key > rs[j].key
		}
		return rs[i].key < rs[j].key
	})

	for i := range rs {
		items[i] = rs[i].model
	}
}

// numeric 仅接受 JSON 数值
func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// numericOrString 额外接受字符串编码的数值
func numericOrString(v interface{}) (float64, bool) {
	if n, ok := numeric(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
