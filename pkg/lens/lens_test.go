package lens

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

func TestDetectBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		brand string
		model string
		want  Mount
	}{
		{"Canon", "EOS R5", MountCanonRF},
		{"Canon", "EOS RP", MountCanonRF},
		{"Canon", "Canon EOS R6 Mark II", MountCanonRF},
		{"Canon", "EOS Rebel T7", MountCanonEFS},
		{"Canon", "EOS 1500D", MountCanonEFS},
		{"Canon", "EOS 90D", MountCanonEFS},
		{"Canon", "EOS 5D Mark IV", MountCanonEF},
		{"Canon", "EOS 6D", MountCanonEF},
		{"Canon", "EOS 60D", MountCanonEFS},
		{"Canon", "EOS M50 Mark II", MountCanonEFM},
		{"Canon", "PowerShot G7 X Mark III", MountFixed},
		{"Nikon", "D750", MountNikonF},
		{"Nikon", "D3500", MountNikonF},
		{"Nikon", "Z6 II", MountNikonZ},
		{"Nikon", "Z 6II", MountNikonZ},
		{"Nikon", "Z7II", MountNikonZ},
		{"Nikon", "Z 5II", MountNikonZ},
		{"Nikon", "Z6III", MountNikonZ},
		{"Nikon", "Z fc", MountNikonZ},
		{"Nikon", "Coolpix P1000", MountFixed},
		{"Sony", "Alpha A7 III", MountSonyE},
		{"Sony", "A6400", MountSonyE},
		{"Sony", "ZV-E10", MountSonyE},
		{"Sony", "A99 II", MountSonyA},
		{"Sony", "SLT-A58", MountSonyA},
		{"Sony", "RX100 VII", MountFixed},
		{"Sony", "ZV-1", MountFixed},
		{"Fujifilm", "X-T4", MountFujiX},
		{"Fuji", "X-Pro3", MountFujiX},
		{"Fujifilm", "GFX 50S II", MountFujiGF},
		{"Fujifilm", "X100V", MountFixed},
		{"Panasonic", "Lumix GH5", MountUnknown},
		{"Canon", "Selphy CP1300", MountUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.brand+" "+tt.model, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DetectBody(tt.brand, tt.model))
		})
	}
}

func TestDetectLens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		brand string
		name  string
		want  Mount
	}{
		{"Canon", "RF 24-105mm f/4L IS USM", MountCanonRF},
		{"Canon", "RF-S 18-45mm f/4.5-6.3", MountCanonRF},
		{"Canon", "RF50mm F1.8 STM", MountCanonRF},
		{"Canon", "EF 50mm f/1.8 STM", MountCanonEF},
		{"Canon", "EF70-200mm f/2.8L", MountCanonEF},
		{"Canon", "EF-S 18-55mm IS STM", MountCanonEFS},
		{"Canon", "EF-M 22mm f/2 STM", MountCanonEFM},
		{"Nikon", "NIKKOR Z 24-70mm f/4 S", MountNikonZ},
		{"Nikon", "Z DX 16-50mm f/3.5-6.3 VR", MountNikonZ},
		{"Nikon", "AF-S NIKKOR 50mm f/1.8G", MountNikonF},
		{"Sony", "FE 24-70mm F2.8 GM", MountSonyE},
		{"Sony", "E 18-135mm F3.5-5.6 OSS", MountSonyE},
		{"Sony", "E PZ 18-105mm F4 G OSS", MountSonyE},
		{"Sony", "DT 18-55mm F3.5-5.6 SAM", MountSonyA},
		{"Sony", "50mm F1.4 (SAL50F14)", MountSonyA},
		{"Fujifilm", "XF 18-55mm F2.8-4", MountFujiX},
		{"Fujifilm", "XC15-45mm", MountFujiX},
		{"Fujifilm", "GF 63mm F2.8", MountFujiGF},
		{"Sigma", "24-70mm DG DN Art", MountUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.brand+" "+tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DetectLens(tt.brand, tt.name))
		})
	}
}

func sonyCatalog() []domain.Lens {
	return []domain.Lens{
		{ID: "sony-dt-18-55", Brand: "Sony", Name: "DT 18-55mm F3.5-5.6 SAM", Price: 8000},
		{ID: "sony-sal50", Brand: "Sony", Name: "50mm F1.4 (SAL50F14)", Price: 22000},
		{ID: "sony-fe-24-70", Brand: "Sony", Name: "FE 24-70mm F2.8 GM", Price: 150000},
		{ID: "sony-e-18-135", Brand: "Sony", Name: "E 18-135mm F3.5-5.6 OSS", Price: 40000},
	}
}

func TestFilter_NoCrossMount(t *testing.T) {
	t.Parallel()

	aMount := []domain.Lens{sonyCatalog()[0], sonyCatalog()[1]}
	assert.Empty(t, Filter(MountSonyE, aMount), "A-mount lenses must never fit an E-mount body")

	got := Filter(MountSonyE, sonyCatalog())
	ids := make([]string, 0, len(got))
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"sony-fe-24-70", "sony-e-18-135"}, ids)

	got = Filter(MountSonyA, sonyCatalog())
	assert.Len(t, got, 2)
}

func TestFilter_CanonAPSCAcceptsEF(t *testing.T) {
	t.Parallel()

	catalog := []domain.Lens{
		{ID: "ef-50", Brand: "Canon", Name: "EF 50mm f/1.8 STM"},
		{ID: "efs-18-55", Brand: "Canon", Name: "EF-S 18-55mm"},
		{ID: "rf-50", Brand: "Canon", Name: "RF 50mm F1.8"},
		{ID: "efm-22", Brand: "Canon", Name: "EF-M 22mm"},
	}

	assert.Len(t, Filter(MountCanonEFS, catalog), 2)
	assert.Len(t, Filter(MountCanonEF, catalog), 1)
	assert.Len(t, Filter(MountCanonRF, catalog), 1)
	assert.Len(t, Filter(MountCanonEFM, catalog), 1)
}

func TestFilter_FixedAndUnknown(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Filter(MountFixed, sonyCatalog()))
	assert.Nil(t, Filter(MountUnknown, sonyCatalog()))
}

func TestBonusPolicy(t *testing.T) {
	t.Parallel()

	b := DefaultBonusPolicy()
	assert.Equal(t, int64(6000), b.Bonus(domain.Lens{Price: 40000}))
	assert.Equal(t, int64(1000), b.Bonus(domain.Lens{Price: 0}))
	assert.Equal(t, int64(1200), b.Bonus(domain.Lens{Price: 7999}))
}
