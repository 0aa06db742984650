package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsdevblog/castile-money/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const timeLayout = "2006-01-02 15:04:05"

const (
	CallbackCheckBalance = "check_balance"
	CallbackPaymentProof = "payment_proof"
	CallbackReferral     = "referral"
	CallbackBotInfo      = "bot_info"
	CallbackWithdraw     = "withdraw"
	CallbackBackToMain   = "back_to_main"
)

const (
	textNoPermission      = "⛔ Anda tidak memiliki izin untuk mengakses perintah ini."
	textUnknownCommand    = "❓ Perintah tidak dikenal. Gunakan /start untuk memulai bot."
	textInternalError     = "⚠️ Terjadi kesalahan. Silakan coba lagi nanti."
	textInvalidDana       = "❌ Nomor DANA tidak valid. Pastikan format benar."
	textTxIDNotNumber     = "❌ ID transaksi harus berupa angka."
	textTxNotFound        = "❌ Transaksi tidak ditemukan atau sudah diproses."
	textAddArgsNotNumber  = "❌ User ID dan jumlah harus berupa angka."
	textAmountNotPositive = "❌ Jumlah harus lebih dari 0."
	textUserNotFound      = "❌ Pengguna tidak ditemukan."
	textNoProofs          = "Belum ada bukti pembayaran saat ini."
	textNoHistory         = "Belum ada transaksi."
	textNoPending         = "Tidak ada penarikan yang menunggu."
	textStatsDaysInvalid  = "❌ Jumlah hari harus berupa angka."

	usageDana       = "❌ Format salah. Gunakan: `/dana 08xxxxxxxxxx`"
	usageApprove    = "❌ Format salah. Gunakan: `/approve [transaction_id]`"
	usageReject     = "❌ Format salah. Gunakan: `/reject [transaction_id] [alasan]`"
	usageAddBalance = "❌ Format salah. Gunakan: `/add_balance [user_id] [jumlah]`"
	usageBroadcast  = "❌ Format salah. Gunakan: `/broadcast [pesan]`"
)

const textMainMenu = "🤖 *Castile Money Bot - Bot Penghasil Saldo E-Wallet*\n" +
	"💰 *Dapatkan saldo DANA dengan mudah:*\n" +
	"• Hanya dengan menonton iklan 15 detik\n" +
	"• Minimal withdraw %s\n" +
	"• Pembayaran instan ke e-wallet\n\n" +
	"✨ *Fitur Utama:*\n" +
	"• Tonton iklan dapat saldo\n" +
	"• Withdraw ke DANA\n" +
	"• Cek saldo realtime\n" +
	"• Sistem otomatis 24 jam\n\n" +
	"🌟 _Start sekarang dan mulai menghasilkan!_\n"

var printer = message.NewPrinter(language.Indonesian)

// formatMoney форматирует сумму по-индонезийски: 6000 -> Rp6.000.
func formatMoney(amount int64) string {
	return printer.Sprintf("Rp%d", amount)
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

var typeLabels = map[domain.TransactionType]string{
	domain.TransactionTypeReferral:  "Referral",
	domain.TransactionTypeAdEarning: "Iklan",
	domain.TransactionTypeWithdraw:  "Penarikan",
	domain.TransactionTypeAdminAdd:  "Admin",
}

var statusLabels = map[domain.TransactionStatus]string{
	domain.TransactionStatusPending:   "menunggu",
	domain.TransactionStatusCompleted: "selesai",
	domain.TransactionStatusRejected:  "ditolak",
}

func mainMenuText(minWithdrawal int64) string {
	return fmt.Sprintf(textMainMenu, formatMoney(minWithdrawal))
}

func myIDText(e Event, isAdmin bool) string {
	status := "❌ Tidak"
	if isAdmin {
		status = "✅ Ya"
	}
	username := "-"
	if e.Username != "" {
		username = "@" + e.Username
	}
	return fmt.Sprintf("🆔 Informasi ID Anda\n\nUser ID: %d\nUsername: %s\nNama: %s\n\nStatus Admin: %s",
		e.UserID, username, e.FirstName, status)
}

func referralText(code, link string, bonus int64) string {
	return fmt.Sprintf("🔗 *Program Referral Castile Money*\n\n"+
		"Dapatkan bonus %s untuk setiap teman yang bergabung!\n\n"+
		"Kode Referral Anda: `%s`\n"+
		"Link Referral Anda: `%s`\n\n"+
		"Bagikan link ini kepada teman Anda dan dapatkan bonus!", formatMoney(bonus), code, link)
}

func referralBonusText(bonus int64) string {
	return fmt.Sprintf("🎉 *Bonus Referral*\n\nTeman Anda bergabung melalui link referral Anda.\n"+
		"Bonus %s telah ditambahkan ke saldo Anda.", formatMoney(bonus))
}

func balanceText(balance, minWithdrawal int64) string {
	return fmt.Sprintf("💰 *Saldo Anda*\n\n"+
		"Saldo saat ini: %s\n"+
		"Minimal penarikan: %s\n\n"+
		"Tonton lebih banyak iklan untuk menambah saldo!", formatMoney(balance), formatMoney(minWithdrawal))
}

func insufficientText(minWithdrawal int64) string {
	return fmt.Sprintf("❌ Saldo Anda belum mencukupi untuk penarikan.\nMinimal penarikan adalah %s.",
		formatMoney(minWithdrawal))
}

func withdrawPromptText(balance int64) string {
	return fmt.Sprintf("💳 *Penarikan Saldo*\n\n"+
		"Saldo Anda: %s\n"+
		"Silakan kirimkan nomor DANA Anda dengan format:\n"+
		"`/dana 08xxxxxxxxxx`", formatMoney(balance))
}

func cooldownText(remaining time.Duration) string {
	seconds := int64((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("⏳ Mohon tunggu %d detik sebelum menggunakan perintah ini lagi.", seconds)
}

func withdrawalCreatedText(tx *domain.Transaction, destination string) string {
	return fmt.Sprintf("✅ *Permintaan Penarikan Berhasil*\n\n"+
		"Transaction ID: %d\n"+
		"Jumlah: %s\n"+
		"DANA: %s\n\n"+
		"Pembayaran akan diproses dalam 24 jam kerja.", tx.ID, formatMoney(tx.Amount), destination)
}

func adminWithdrawalText(tx *domain.Transaction, destination string) string {
	return fmt.Sprintf("🔔 *Permintaan Penarikan Baru*\n\n"+
		"Transaction ID: %d\n"+
		"User ID: %d\n"+
		"Jumlah: %s\n"+
		"DANA: %s\n"+
		"Waktu: %s\n\n"+
		"Untuk menyetujui: `/approve %d`\n"+
		"Untuk menolak: `/reject %d [alasan]`",
		tx.ID, tx.UserID, formatMoney(tx.Amount), destination, formatTime(tx.CreatedAt), tx.ID, tx.ID)
}

func approvedUserText(tx *domain.Transaction) string {
	return fmt.Sprintf("💰 Penarikan Berhasil\n\n"+
		"Transaction ID: %d\n"+
		"Jumlah: %s\n"+
		"Detail: %s\n\n"+
		"Terima kasih telah menggunakan Castile Money Bot!", tx.ID, formatMoney(tx.Amount), tx.Details)
}

func rejectedUserText(tx *domain.Transaction, reason string) string {
	return fmt.Sprintf("❌ Penarikan Ditolak\n\n"+
		"Transaction ID: %d\n"+
		"Jumlah: %s\n"+
		"Alasan: %s\n\n"+
		"Saldo telah dikembalikan ke akun Anda.", tx.ID, formatMoney(tx.Amount), reason)
}

func creditedUserText(amount int64) string {
	return fmt.Sprintf("💰 *Saldo Ditambahkan*\n\nJumlah: %s\n\nSaldo telah ditambahkan ke akun Anda.",
		formatMoney(amount))
}

func approvedAdminText(txID int64) string {
	return fmt.Sprintf("✅ Penarikan ID %d telah disetujui dan pengguna telah diberitahu.", txID)
}

func rejectedAdminText(txID int64) string {
	return fmt.Sprintf("✅ Penarikan ID %d telah ditolak dan saldo telah dikembalikan ke pengguna.", txID)
}

func creditedAdminText(amount, userID int64) string {
	return fmt.Sprintf("✅ Saldo %s telah ditambahkan ke pengguna %d.", formatMoney(amount), userID)
}

func statsText(s *domain.StatsSnapshot) string {
	return fmt.Sprintf("📊 *Statistik Bot*\n\n"+
		"👥 Total Pengguna: %d\n"+
		"👤 Pengguna Aktif (%d hari): %d\n"+
		"🔄 Total Transaksi: %d\n"+
		"💸 Total Penarikan: %d (%s)\n"+
		"💰 Total Saldo Sistem: %s\n\n"+
		"Diperbarui: %s",
		s.TotalUsers, s.ActiveWindowDays, s.ActiveUsers, s.TotalTransactions,
		s.CompletedWithdrawals, formatMoney(s.WithdrawnAmount), formatMoney(s.TotalBalance),
		formatTime(s.GeneratedAt))
}

// proofsText без Markdown: замаскированные имена содержат звездочки.
func proofsText(proofs []domain.WithdrawalProof) string {
	if len(proofs) == 0 {
		return textNoProofs
	}
	var b strings.Builder
	b.WriteString("📊 Bukti Pembayaran Terbaru\n\n")
	for i, p := range proofs {
		fmt.Fprintf(&b, "%d. %s: %s - %s\n", i+1, p.MaskedName, formatMoney(p.Amount), formatTime(p.CreatedAt))
	}
	return b.String()
}

func historyText(txs []domain.Transaction) string {
	if len(txs) == 0 {
		return textNoHistory
	}
	var b strings.Builder
	b.WriteString("📜 Riwayat Transaksi\n\n")
	for _, tx := range txs {
		sign := "+"
		if tx.Type == domain.TransactionTypeWithdraw {
			sign = "-"
		}
		fmt.Fprintf(&b, "#%d %s %s%s (%s) - %s\n",
			tx.ID, typeLabels[tx.Type], sign, formatMoney(tx.Amount), statusLabels[tx.Status], formatTime(tx.CreatedAt))
	}
	return b.String()
}

func pendingText(txs []domain.Transaction) string {
	if len(txs) == 0 {
		return textNoPending
	}
	var b strings.Builder
	b.WriteString("⏳ Penarikan Menunggu\n\n")
	for _, tx := range txs {
		fmt.Fprintf(&b, "#%d user %d %s - %s\n%s\n\n",
			tx.ID, tx.UserID, formatMoney(tx.Amount), formatTime(tx.CreatedAt), tx.Details)
	}
	b.WriteString("Gunakan /approve [id] atau /reject [id] [alasan].")
	return b.String()
}

func broadcastStartText(recipients int) string {
	return fmt.Sprintf("🔄 Memulai broadcast ke %d pengguna...", recipients)
}

func broadcastDoneText(r BroadcastResult) string {
	return fmt.Sprintf("✅ Broadcast selesai!\nBerhasil: %d\nGagal: %d", r.Success, r.Failed)
}

func broadcastText(text string) string {
	return "📢 Pengumuman\n\n" + text
}

func botInfoText(botUsername string, minWithdrawal int64) string {
	return fmt.Sprintf("ℹ️ Informasi Bot\n\n"+
		"Nama: %s\n"+
		"Deskripsi: Bot penghasil saldo e-wallet dengan menonton iklan\n\n"+
		"Cara Kerja:\n"+
		"1. Tonton iklan 15 detik\n"+
		"2. Dapatkan saldo untuk setiap iklan\n"+
		"3. Kumpulkan minimal %s\n"+
		"4. Tarik ke DANA", botUsername, formatMoney(minWithdrawal))
}

func helpText(isAdmin bool) string {
	text := "📖 Perintah\n\n" +
		"/start - menu utama\n" +
		"/balance - cek saldo\n" +
		"/dana 08xxxxxxxxxx - tarik saldo ke DANA\n" +
		"/history - riwayat transaksi\n" +
		"/referral - link referral\n" +
		"/myid - informasi ID"
	if isAdmin {
		text += "\n\nAdmin:\n" +
			"/approve [id]\n" +
			"/reject [id] [alasan]\n" +
			"/add_balance [user_id] [jumlah]\n" +
			"/stats [hari]\n" +
			"/pending\n" +
			"/broadcast [pesan]"
	}
	return text
}
