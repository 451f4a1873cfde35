package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

/* =========================================================
   QRCodec — parse & encode semua payload QR sekolah.
   Murni: tanpa DB, tanpa side effect. Secret di-inject
   supaya tes deterministik.

   Format yang didukung:
     ROOM:<code>                          (polos)
     ABCR|<room_code>|<sig>               (signed)
     GROUP:<group_id>                     (polos)
     ABCGRP|<group_id>|<sig>              (signed, kanonik)
     ABCGRP|<group_id>|<period_key>|<sig> (signed, legacy)
     ABC1|id|code|valid|status            (kartu lama, tanpa sig)
     ABC2|id|code|valid|status|<sig>      (kartu baru, HMAC)
     name|code|level|group|valid|status   (LEGACY 6 kolom)
     ABCSTU:<code>|<id?>
     <code>                               (kode polos)
========================================================= */

type QRCodec struct {
	secret []byte
}

func NewQRCodec(secret string) *QRCodec {
	return &QRCodec{secret: []byte(secret)}
}

func (c *QRCodec) sign(payload string) string {
	m := hmac.New(sha256.New, c.secret)
	_, _ = m.Write([]byte(payload))
	return hex.EncodeToString(m.Sum(nil))
}

// verify pakai perbandingan constant-time
func (c *QRCodec) verify(payload, sig string) bool {
	return hmac.Equal([]byte(c.sign(payload)), []byte(sig))
}

/* =====================
   Room QR
===================== */

type RoomQR struct {
	Version  string
	RoomCode string
}

func (c *QRCodec) MakeRoomQR(roomCode string) string {
	return fmt.Sprintf("ABCR|%s|%s", roomCode, c.sign(roomCode))
}

func (c *QRCodec) ParseRoomQR(raw string) (*RoomQR, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrQREmpty
	}

	if strings.HasPrefix(s, "ROOM:") {
		code := strings.TrimSpace(strings.TrimPrefix(s, "ROOM:"))
		if code == "" {
			return nil, fmt.Errorf("%w: kode ruangan kosong", ErrQRFormat)
		}
		return &RoomQR{Version: "ROOM", RoomCode: code}, nil
	}

	parts := strings.Split(s, "|")
	if len(parts) == 3 && parts[0] == "ABCR" {
		roomCode, sig := parts[1], parts[2]
		if !c.verify(roomCode, sig) {
			return nil, fmt.Errorf("%w: signature QR ruangan tidak valid", ErrQRFormat)
		}
		return &RoomQR{Version: "ABCR", RoomCode: roomCode}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrQRFormat, s)
}

/* =====================
   Group QR
===================== */

type GroupQR struct {
	Version   string
	GroupID   uuid.UUID
	PeriodKey *string // hanya format legacy 4 bagian
}

func (c *QRCodec) MakeGroupQR(groupID uuid.UUID) string {
	gid := groupID.String()
	return fmt.Sprintf("ABCGRP|%s|%s", gid, c.sign(gid))
}

func (c *QRCodec) ParseGroupQR(raw string) (*GroupQR, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrQREmpty
	}

	if strings.HasPrefix(s, "GROUP:") {
		gid, err := uuid.Parse(strings.TrimSpace(strings.TrimPrefix(s, "GROUP:")))
		if err != nil {
			return nil, fmt.Errorf("%w: group id tidak valid", ErrQRFormat)
		}
		return &GroupQR{Version: "GROUP", GroupID: gid}, nil
	}

	parts := strings.Split(s, "|")
	switch {
	case len(parts) == 3 && parts[0] == "ABCGRP":
		gidStr, sig := parts[1], parts[2]
		if !c.verify(gidStr, sig) {
			return nil, fmt.Errorf("%w: signature QR grup tidak valid", ErrQRFormat)
		}
		gid, err := uuid.Parse(gidStr)
		if err != nil {
			return nil, fmt.Errorf("%w: group id tidak valid", ErrQRFormat)
		}
		return &GroupQR{Version: "ABCGRP", GroupID: gid}, nil

	case len(parts) == 4 && parts[0] == "ABCGRP":
		// legacy: sig atas "gid|period_key"
		gidStr, periodKey, sig := parts[1], parts[2], parts[3]
		if !c.verify(gidStr+"|"+periodKey, sig) {
			return nil, fmt.Errorf("%w: signature QR grup tidak valid", ErrQRFormat)
		}
		gid, err := uuid.Parse(gidStr)
		if err != nil {
			return nil, fmt.Errorf("%w: group id tidak valid", ErrQRFormat)
		}
		return &GroupQR{Version: "ABCGRP_LEGACY", GroupID: gid, PeriodKey: &periodKey}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrQRFormat, s)
}

/* =====================
   Student QR
===================== */

type StudentQR struct {
	Version     string
	StudentID   *uuid.UUID // nil untuk CODE / LEGACY / ABCSTU tanpa id
	StudentCode string
}

func (c *QRCodec) MakeStudentQR(studentID uuid.UUID, studentCode, validUntil, statusCode string) string {
	payload := fmt.Sprintf("%s|%s|%s|%s", studentID, studentCode, validUntil, statusCode)
	return fmt.Sprintf("ABC2|%s|%s", payload, c.sign(payload))
}

func (c *QRCodec) ParseStudentQR(raw string) (*StudentQR, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrQREmpty
	}

	if strings.HasPrefix(s, "ABCSTU:") {
		payload := strings.TrimPrefix(s, "ABCSTU:")
		parts := strings.Split(payload, "|")
		code := strings.TrimSpace(parts[0])
		if code == "" {
			return nil, fmt.Errorf("%w: kode siswa kosong", ErrQRFormat)
		}
		out := &StudentQR{Version: "ABCSTU", StudentCode: code}
		if len(parts) >= 2 {
			if id, err := uuid.Parse(strings.TrimSpace(parts[1])); err == nil {
				out.StudentID = &id
			}
		}
		return out, nil
	}

	if !strings.Contains(s, "|") {
		return &StudentQR{Version: "CODE", StudentCode: s}, nil
	}

	parts := strings.Split(s, "|")
	switch {
	case len(parts) == 5 && parts[0] == "ABC1":
		id, err := uuid.Parse(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: student id tidak valid", ErrQRFormat)
		}
		return &StudentQR{Version: "ABC1", StudentID: &id, StudentCode: strings.TrimSpace(parts[2])}, nil

	case len(parts) == 6 && parts[0] == "ABC2":
		payload := strings.Join(parts[1:5], "|")
		if !c.verify(payload, parts[5]) {
			return nil, fmt.Errorf("%w: signature QR siswa tidak valid", ErrQRFormat)
		}
		id, err := uuid.Parse(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: student id tidak valid", ErrQRFormat)
		}
		return &StudentQR{Version: "ABC2", StudentID: &id, StudentCode: strings.TrimSpace(parts[2])}, nil

	case len(parts) == 6:
		// LEGACY: fullName|studentCode|level|groupName|validUntil|statusCode
		code := strings.TrimSpace(parts[1])
		if code == "" {
			return nil, fmt.Errorf("%w: kode siswa kosong", ErrQRFormat)
		}
		return &StudentQR{Version: "LEGACY", StudentCode: code}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrQRFormat, s)
}
