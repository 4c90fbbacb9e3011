package instrument

// BaselineDefaultScore is the reset value of every item: the most-impaired response.
const BaselineDefaultScore = 1

// Default returns the 43-item PDBK instrument (HATI 15, AKAL 16, JASAD 12).
func Default() *Catalog {
	return defaultCatalog
}

var defaultCatalog = NewBuilder(BaselineDefaultScore).
	// HATI
	Add(HATI, "Regulasi emosi",
		"Peserta didik menunjukkan kesulitan menenangkan diri setelah emosi meningkat.",
		"Peserta didik bereaksi berlebihan terhadap situasi yang tidak sesuai harapan.",
		"Peserta didik mudah berubah mood dalam waktu singkat.",
		"Peserta didik sulit menerima koreksi atau arahan tanpa emosi.",
		"Peserta didik membutuhkan bantuan untuk menstabilkan emosi.",
	).
	Add(HATI, "Kontrol perilaku",
		"Peserta didik menunjukkan perilaku impulsif (bertindak tanpa berpikir).",
		"Peserta didik sulit mengikuti aturan kelas secara konsisten.",
		"Peserta didik menunjukkan perilaku agresif (verbal/nonverbal).",
		"Peserta didik melakukan tindakan yang berpotensi membahayakan diri/lingkungan.",
		"Peserta didik sulit dihentikan saat melakukan perilaku tertentu.",
	).
	Add(HATI, "Interaksi sosial",
		"Peserta didik menunjukkan kesulitan bekerja sama dengan teman.",
		"Peserta didik cenderung menarik diri dari interaksi sosial.",
		"Peserta didik sulit menunggu giliran saat aktivitas bersama.",
		"Peserta didik menunjukkan respons sosial yang kurang sesuai konteks.",
		"Peserta didik memerlukan pendampingan untuk berinteraksi secara positif.",
	).
	// AKAL
	Add(AKAL, "Atensi & fokus",
		"Peserta didik mudah terdistraksi saat pembelajaran berlangsung.",
		"Peserta didik kesulitan mempertahankan perhatian sampai tugas selesai.",
		"Peserta didik memerlukan pengulangan instruksi agar dapat fokus.",
		"Peserta didik sering berhenti di tengah kegiatan tanpa alasan jelas.",
	).
	Add(AKAL, "Bahasa reseptif",
		"Peserta didik kesulitan memahami instruksi sederhana.",
		"Peserta didik kesulitan memahami instruksi dua langkah atau lebih.",
		"Peserta didik kesulitan memahami pertanyaan lisan.",
		"Peserta didik tidak merespons panggilan secara konsisten.",
	).
	Add(AKAL, "Bahasa ekspresif",
		"Peserta didik kesulitan mengungkapkan kebutuhan dengan kata-kata.",
		"Peserta didik menggunakan kosakata yang terbatas dibanding teman sebaya.",
		"Peserta didik kesulitan menyusun kalimat sederhana.",
		"Peserta didik lebih sering menggunakan gestur daripada verbal untuk berkomunikasi.",
	).
	Add(AKAL, "Kognitif dasar",
		"Peserta didik mengalami kesulitan membaca (pengenalan huruf/kata).",
		"Peserta didik mengalami kesulitan berhitung dasar.",
		"Peserta didik kesulitan memahami konsep sederhana (besar-kecil, banyak-sedikit).",
		"Peserta didik memerlukan waktu lebih lama untuk menyelesaikan tugas akademik.",
	).
	// JASAD
	Add(JASAD, "Motorik kasar",
		"Peserta didik mengalami kesulitan koordinasi gerak saat berjalan/berlari.",
		"Peserta didik kesulitan menjaga keseimbangan tubuh.",
		"Peserta didik kesulitan melakukan aktivitas motorik kasar (melompat/naik-turun tangga).",
		"Peserta didik mudah lelah saat aktivitas fisik ringan.",
	).
	Add(JASAD, "Motorik halus",
		"Peserta didik kesulitan memegang alat tulis dengan stabil.",
		"Peserta didik kesulitan menebalkan/meniru bentuk sederhana.",
		"Peserta didik kesulitan aktivitas meronce/menggunting/melipat.",
		"Peserta didik kesulitan koordinasi tangan-mata saat tugas halus.",
	).
	Add(JASAD, "Fungsi sensorik",
		"Peserta didik menunjukkan indikasi gangguan penglihatan saat aktivitas belajar.",
		"Peserta didik menunjukkan indikasi gangguan pendengaran saat menerima instruksi.",
		"Peserta didik sensitif terhadap suara keras dan menutup telinga.",
		"Peserta didik menunjukkan respons sensorik yang tidak sesuai (menjilat/menyentuh berlebihan).",
	).
	MustBuild()
