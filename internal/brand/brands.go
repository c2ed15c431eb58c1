package brand

import "github.com/UnendingLoop/BrandMarker/internal/model"

const (
	AT247 model.BrandID = "AT247"
	DPCS  model.BrandID = "DPCS"
	TT    model.BrandID = "TT"
	DPSG  model.BrandID = "DPSG"
)

// DefaultBrand is used for unknown ids
const DefaultBrand = AT247

var defaultTheme = model.Theme{PrimaryColor: "#2260ff", BackgroundColor: "#f5f7fb"}

// builtin lists brands in presentation order
var builtin = []model.BrandConfig{
	{
		ID:          AT247,
		Name:        "Aothun247.vn",
		DisplayName: "Aothun247",
		Description: "Công cụ chèn logo Aothun247.vn",
		Assets: map[string]string{
			model.AssetLogoCenter: "AT247/logogiua.png",
			model.AssetLogoCorner: "AT247/logogoc.png",
		},
		Variants: []model.WatermarkVariant{
			{Label: "Mặc định", Value: "default"},
			{Label: "Cũ", Value: "1", Default: true, Asset: "AT247/watermark aothun247-o1.png"},
			{Label: "0919604444", Value: "0919604444", Asset: "AT247/wm0919604444.png"},
			{Label: "0836344444", Value: "0836344444", Asset: "AT247/wm0836344444.png"},
			{Label: "0817801111", Value: "0817801111", Asset: "AT247/wm0817801111.png"},
			{Label: "0774194444", Value: "0774194444", Asset: "AT247/wm0774194444.png"},
			{Label: "0898168338", Value: "0898168338", Asset: "AT247/wm0898168338.png"},
			{Label: "0859784444", Value: "0859784444", Asset: "AT247/wm0859784444.png"},
		},
		Layout: model.LayoutPhoneOverride,
		Theme:  defaultTheme,
	},
	{
		ID:          DPCS,
		Name:        "DPCS",
		DisplayName: "ĐPCS",
		Description: "Công cụ chèn logo ĐPCS",
		Assets: map[string]string{
			model.AssetLogoCenter: "DPCS/centerbtp.png",
			model.AssetLogoCorner: "DPCS/logobtp.png",
		},
		Variants: []model.WatermarkVariant{
			{Label: "0961887777", Value: "0961887777", Asset: "DPCS/sdtbtp.png", Default: true},
			{Label: "0886112255", Value: "0886112255", Asset: "DPCS/n0886112255.png"},
			{Label: "0931987654", Value: "0931987654", Asset: "DPCS/n0931987654.png"},
			{Label: "0844371111", Value: "0844371111", Asset: "DPCS/n0844371111.png"},
			{Label: "0825484444", Value: "0825484444", Asset: "DPCS/n0825484444.png"},
			{Label: "0783868668", Value: "0783868668", Asset: "DPCS/n0783868668.png"},
			{Label: "0889821234", Value: "0889821234", Asset: "DPCS/n0889821234.png"},
			{Label: "0835061234", Value: "0835061234", Asset: "DPCS/n0835061234.png"},
			{Label: "0817867777", Value: "0817867777", Asset: "DPCS/n0817867777.png"},
			{Label: "Không SĐT", Value: "nophone", OptOut: true},
		},
		Layout:   model.LayoutSideLogo,
		Features: model.BrandFeatures{SecondaryLogoToggle: true},
		Theme:    model.Theme{PrimaryColor: "#c32032", BackgroundColor: "#f5f7fb"},
	},
	{
		ID:          TT,
		Name:        "DPTT",
		DisplayName: "ĐPTT",
		Description: "Công cụ chèn logo ĐPTT",
		Assets: map[string]string{
			model.AssetLogoCenter: "TT/centern.png",
			model.AssetLogoCorner: "TT/logo.png",
		},
		Variants: []model.WatermarkVariant{
			{Label: "Mặc định", Value: "0", Default: true, OptOut: true},
			{Label: "0927687777", Value: "0927687777", Asset: "TT/n0927687777.png"},
			{Label: "0961887777", Value: "0961887777", Asset: "TT/n0961887777.png"},
			{Label: "0838344444", Value: "0838344444", Asset: "TT/n0838344444.png"},
			{Label: "0931987654", Value: "0931987654", Asset: "TT/n0931987654.png"},
			{Label: "0822931234", Value: "0822931234", Asset: "TT/n0822931234.png"},
			{Label: "0825484444", Value: "0825484444", Asset: "TT/n0825484444.png"},
			{Label: "0859784444", Value: "0859784444", Asset: "TT/n0859784444.png"},
			{Label: "0889821234", Value: "0889821234", Asset: "TT/n0889821234.png"},
			{Label: "0813866868", Value: "0813866868", Asset: "TT/n0813866868.png"},
			{Label: "0842554444", Value: "0842554444", Asset: "TT/n0842554444.png"},
			{Label: "0837974444", Value: "0837974444", Asset: "TT/n0837974444.png"},
			{Label: "0898168338", Value: "0898168338", Asset: "TT/n0898168338.png"},
			{Label: "0774194444", Value: "0774194444", Asset: "TT/n0774194444.png"},
			{Label: "0836344444", Value: "0836344444", Asset: "TT/n0836344444.png"},
			{Label: "0817867777", Value: "0817867777", Asset: "TT/n0817867777.png"},
		},
		Layout: model.LayoutPhoneCorner,
		Theme:  defaultTheme,
	},
	{
		ID:          DPSG,
		Name:        "DPSG",
		DisplayName: "ĐPSG",
		Description: "Công cụ chèn logo ĐPSG",
		Assets: map[string]string{
			model.AssetLogoBottom: "DPSG/logobottom.png",
			model.AssetCenter:     "DPSG/center.png",
			model.AssetNumber:     "DPSG/sdt.png",
		},
		Variants: []model.WatermarkVariant{
			{Label: "Mặc định", Value: "0", Default: true},
			{Label: "K chèn", Value: "200", OptOut: true},
		},
		Layout:   model.LayoutTriptych,
		Features: model.BrandFeatures{ArchiveDownload: true},
		Theme:    defaultTheme,
	},
}
