package inventory

import (
	redis "github.com/redis/go-redis/v9"
)

// Every script receives the same leading KEYS so the helpers below can be
// shared:
//
//	KEYS[1] vitals hash (gold, hp_current, hp_max)
//	KEYS[2] set of character item IDs
//	KEYS[3] hash of item ID to character item ID
//	KEYS[4] hash of slot to character item ID
//	ARGV[1] entry key prefix
//
// Scripts reply {ok, error, healed, gold, character_item_id}.
const scriptPrelude = `
local vitals, items, owned, equipped = KEYS[1], KEYS[2], KEYS[3], KEYS[4]
local prefix = ARGV[1]

local function gold_now()
  return tonumber(redis.call('HGET', vitals, 'gold')) or 0
end

local function reject(msg)
  return {0, msg, 0, gold_now(), ''}
end

local function remove_entry(ciid)
  local ekey = prefix .. ciid
  local item_id = redis.call('HGET', ekey, 'item_id')
  local slot = redis.call('HGET', ekey, 'equipped_slot')
  if slot and slot ~= '' and redis.call('HGET', equipped, slot) == ciid then
    redis.call('HDEL', equipped, slot)
  end
  if item_id and redis.call('HGET', owned, item_id) == ciid then
    redis.call('HDEL', owned, item_id)
  end
  redis.call('SREM', items, ciid)
  redis.call('DEL', ekey)
end

if redis.call('EXISTS', vitals) == 0 then
  return {0, '` + ReasonCharacterNotFound + `', 0, 0, ''}
end
`

// ARGV[2] new ciid, ARGV[3] item id, ARGV[4] item type, ARGV[5] price,
// ARGV[6] character id, ARGV[7] created at (unix seconds)
const buyScript = scriptPrelude + `
local price = tonumber(ARGV[5])
if gold_now() < price then
  return reject('` + ReasonNotEnoughGold + `')
end

local ciid = redis.call('HGET', owned, ARGV[3])
if ciid and redis.call('EXISTS', prefix .. ciid) == 1 then
  redis.call('HINCRBY', prefix .. ciid, 'quantity', 1)
else
  ciid = ARGV[2]
  redis.call('HSET', prefix .. ciid,
    'character_id', ARGV[6],
    'item_id', ARGV[3],
    'item_type', ARGV[4],
    'price', ARGV[5],
    'quantity', 1,
    'equipped_slot', '',
    'created_at', ARGV[7])
  redis.call('SADD', items, ciid)
  redis.call('HSET', owned, ARGV[3], ciid)
end

local gold = redis.call('HINCRBY', vitals, 'gold', -price)
return {1, '', 0, gold, ciid}
`

// ARGV[2] ciid
const sellScript = scriptPrelude + `
local ciid = ARGV[2]
local ekey = prefix .. ciid
local qty = redis.call('HGET', ekey, 'quantity')
if not qty then
  return reject('` + ReasonEntryNotFound + `')
end

local refund = math.floor((tonumber(redis.call('HGET', ekey, 'price')) or 0) / 2)
if redis.call('HINCRBY', ekey, 'quantity', -1) <= 0 then
  remove_entry(ciid)
end

local gold = redis.call('HINCRBY', vitals, 'gold', refund)
return {1, '', 0, gold, ciid}
`

// ARGV[2] ciid, ARGV[3] slot
const equipScript = scriptPrelude + `
local ciid, slot = ARGV[2], ARGV[3]
local ekey = prefix .. ciid
local item_type = redis.call('HGET', ekey, 'item_type')
if not item_type then
  return reject('` + ReasonEntryNotFound + `')
end
if slot ~= 'weapon' and slot ~= 'armor' then
  return reject('` + ReasonInvalidSlot + `')
end
if item_type ~= slot then
  return reject('` + ReasonSlotMismatch + `')
end

local previous = redis.call('HGET', equipped, slot)
if previous and previous ~= ciid and redis.call('EXISTS', prefix .. previous) == 1 then
  redis.call('HSET', prefix .. previous, 'equipped_slot', '')
end
redis.call('HSET', ekey, 'equipped_slot', slot)
redis.call('HSET', equipped, slot, ciid)
return {1, '', 0, gold_now(), ciid}
`

// ARGV[2] ciid
const unequipScript = scriptPrelude + `
local ciid = ARGV[2]
local ekey = prefix .. ciid
local slot = redis.call('HGET', ekey, 'equipped_slot')
if not slot then
  return reject('` + ReasonEntryNotFound + `')
end
if slot ~= '' then
  if redis.call('HGET', equipped, slot) == ciid then
    redis.call('HDEL', equipped, slot)
  end
  redis.call('HSET', ekey, 'equipped_slot', '')
end
return {1, '', 0, gold_now(), ciid}
`

// ARGV[2] ciid, ARGV[3] quantity (0 drops everything)
const dropScript = scriptPrelude + `
local ciid = ARGV[2]
local ekey = prefix .. ciid
local qty = tonumber(redis.call('HGET', ekey, 'quantity'))
if not qty then
  return reject('` + ReasonEntryNotFound + `')
end

local n = tonumber(ARGV[3]) or 0
if n <= 0 or n >= qty then
  remove_entry(ciid)
else
  redis.call('HINCRBY', ekey, 'quantity', -n)
end
return {1, '', 0, gold_now(), ciid}
`

// ARGV[2] ciid, ARGV[3] heal amount
const useConsumableScript = scriptPrelude + `
local ciid = ARGV[2]
local ekey = prefix .. ciid
local item_type = redis.call('HGET', ekey, 'item_type')
if not item_type then
  return reject('` + ReasonEntryNotFound + `')
end
if item_type ~= 'consumable' then
  return reject('` + ReasonNotConsumable + `')
end

local heal = math.max(0, tonumber(ARGV[3]) or 0)
local current = tonumber(redis.call('HGET', vitals, 'hp_current')) or 0
local max_hp = tonumber(redis.call('HGET', vitals, 'hp_max')) or 0
local healed = math.min(heal, math.max(0, max_hp - current))
if healed > 0 then
  redis.call('HINCRBY', vitals, 'hp_current', healed)
end

if redis.call('HINCRBY', ekey, 'quantity', -1) <= 0 then
  remove_entry(ciid)
end
return {1, '', healed, gold_now(), ciid}
`

var (
	buyItem       = redis.NewScript(buyScript)
	sellItem      = redis.NewScript(sellScript)
	equipItem     = redis.NewScript(equipScript)
	unequipItem   = redis.NewScript(unequipScript)
	dropItem      = redis.NewScript(dropScript)
	useConsumable = redis.NewScript(useConsumableScript)
)
